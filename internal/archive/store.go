package archive

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/chrisedwards/slack-archive/internal/mapping"
)

// groupDMPrefix marks DM file names that belong to multi-party
// conversations; such files keep their raw channel id as the key.
const groupDMPrefix = "C"

// StoreConfig carries everything a Store needs. Users and DMNames may
// be nil when name resolution is not needed; Logger may be nil.
type StoreConfig struct {
	ChannelRoot string
	DMRoot      string
	Users       *mapping.NameMapping // user id -> display name
	DMNames     *mapping.NameMapping // group DM id -> display name
	Include     []string             // channel name glob patterns; empty means all
	Exclude     []string
	Logger      *zap.Logger
}

// Store is the in-memory index over one archive tree. Loads re-read
// the filesystem in full; queries never touch it. A Store is not safe
// for concurrent use.
type Store struct {
	channelRoot string
	dmRoot      string
	users       *mapping.NameMapping
	dmNames     *mapping.NameMapping
	filter      *Filter
	log         *zap.Logger

	channels map[string]*Conversation // keyed by channel directory name
	dms      map[string]*Conversation // keyed by DM file base name
	stats    map[string]UserStats     // last CollectStats result
}

// NewStore creates an empty Store. Call LoadChannels and LoadDMs to
// populate it.
func NewStore(cfg StoreConfig) *Store {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	users := cfg.Users
	if users == nil {
		users = mapping.New("")
	}
	dmNames := cfg.DMNames
	if dmNames == nil {
		dmNames = mapping.New("")
	}
	return &Store{
		channelRoot: cfg.ChannelRoot,
		dmRoot:      cfg.DMRoot,
		users:       users,
		dmNames:     dmNames,
		filter:      NewFilter(cfg.Include, cfg.Exclude),
		log:         log,
		channels:    make(map[string]*Conversation),
		dms:         make(map[string]*Conversation),
	}
}

// LoadChannels scans the channel root for subdirectories, one channel
// per directory, and merges every *.json file inside into that
// channel's conversation. A missing channel root is logged once and
// leaves the channel set empty; a malformed file is logged and skipped
// without aborting its siblings. Every loaded conversation is sorted
// before it becomes visible.
func (s *Store) LoadChannels() {
	s.channels = make(map[string]*Conversation)

	entries, err := os.ReadDir(s.channelRoot)
	if err != nil {
		s.log.Warn("channel root not readable",
			zap.String("path", s.channelRoot), zap.Error(err))
		return
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !s.filter.Match(name) {
			continue
		}
		conv := &Conversation{Name: name, Kind: KindChannel}
		files, _ := filepath.Glob(filepath.Join(s.channelRoot, name, "*.json"))
		sort.Strings(files)
		for _, file := range files {
			s.loadFile(file, conv)
		}
		conv.SortMessages()
		s.channels[name] = conv
	}
}

// LoadDMs scans the DM root for *.json files, one conversation per
// file. The file base name is the storage key; names starting with
// the group prefix are multi-party conversations, anything else is a
// one-to-one DM whose display name is the part before the first "_".
// Failure handling mirrors LoadChannels.
func (s *Store) LoadDMs() {
	s.dms = make(map[string]*Conversation)

	if info, err := os.Stat(s.dmRoot); err != nil || !info.IsDir() {
		s.log.Warn("dm root not found", zap.String("path", s.dmRoot))
		return
	}
	files, _ := filepath.Glob(filepath.Join(s.dmRoot, "*.json"))
	sort.Strings(files)
	for _, file := range files {
		key := strings.TrimSuffix(filepath.Base(file), ".json")
		conv := &Conversation{Name: dmBaseName(key), Kind: dmKind(key)}
		s.loadFile(file, conv)
		conv.SortMessages()
		s.dms[key] = conv
	}
}

// loadFile appends every parseable record in one archive file to conv.
// A file that is not a JSON array of records is logged and skipped;
// individual records that fail to parse are dropped silently.
func (s *Store) loadFile(path string, conv *Conversation) {
	data, err := os.ReadFile(path)
	if err != nil {
		s.log.Warn("skipping unreadable archive file",
			zap.String("file", path), zap.Error(err))
		return
	}
	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		s.log.Warn("skipping malformed archive file",
			zap.String("file", path), zap.Error(err))
		return
	}
	for _, record := range records {
		if m, ok := ParseMessage(record); ok {
			conv.add(m)
		}
	}
}

func dmKind(key string) Kind {
	if strings.HasPrefix(key, groupDMPrefix) {
		return KindGroupDM
	}
	return KindDM
}

// dmBaseName derives the display name of a one-to-one DM from its
// file name: "U1_U2" displays as "U1". Group DM keys pass through.
func dmBaseName(key string) string {
	if strings.HasPrefix(key, groupDMPrefix) {
		return key
	}
	if i := strings.Index(key, "_"); i >= 0 {
		return key[:i]
	}
	return key
}

// ChannelNames returns the loaded channel names, sorted.
func (s *Store) ChannelNames() []string {
	return sortedKeys(s.channels)
}

// DMNames returns the loaded DM keys, sorted.
func (s *Store) DMNames() []string {
	return sortedKeys(s.dms)
}

// DefaultChannel returns the alphabetically first channel name, or ""
// when no channels are loaded.
func (s *Store) DefaultChannel() string {
	names := s.ChannelNames()
	if len(names) == 0 {
		return ""
	}
	return names[0]
}

// Conversation looks up one conversation. KindChannel keys into the
// channel set; both DM kinds key into the DM set.
func (s *Store) Conversation(kind Kind, key string) (*Conversation, bool) {
	if kind == KindChannel {
		c, ok := s.channels[key]
		return c, ok
	}
	c, ok := s.dms[key]
	return c, ok
}

// Scope returns the conversations of one kind, ordered by key, for
// use as a thread-lookup scope. KindChannel selects channels; both DM
// kinds select the full DM set.
func (s *Store) Scope(kind Kind) []*Conversation {
	set := s.dms
	if kind == KindChannel {
		set = s.channels
	}
	out := make([]*Conversation, 0, len(set))
	for _, key := range sortedKeys(set) {
		out = append(out, set[key])
	}
	return out
}

// Search runs a keyword search over one conversation.
func (s *Store) Search(kind Kind, key, keyword string) ([]*Message, error) {
	conv, ok := s.Conversation(kind, key)
	if !ok {
		return nil, fmt.Errorf("no %s conversation %q", kind, key)
	}
	return conv.Search(keyword), nil
}

// Name resolves a user id to its display name, falling back to the id.
func (s *Store) Name(id string) string {
	return s.users.Name(id)
}

// UpdateName maps a user id to a display name and persists the change.
func (s *Store) UpdateName(id, name string) error {
	return s.users.Update(id, name)
}

// UpdateDMName maps a group DM id to a display name and persists it.
func (s *Store) UpdateDMName(id, name string) error {
	return s.dmNames.Update(id, name)
}

// DMDisplayName resolves the display name of a DM key: group DMs go
// through the DM name mapping, one-to-one DMs derive from the file
// name prefix.
func (s *Store) DMDisplayName(key string) string {
	if dmKind(key) == KindGroupDM {
		return s.dmNames.Name(key)
	}
	return dmBaseName(key)
}

func sortedKeys(m map[string]*Conversation) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
