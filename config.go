package galloc

import (
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// ConfigFileName is the file LoadConfig looks for.
const ConfigFileName = "galloc.toml"

// tunables holds every value this package otherwise treats as an
// implementation constant. galloc.toml or GALLOC_* env vars can override
// them before the registry is first touched.
type tunables struct {
	RegionSize   uint64 `toml:"region_size"`
	SingleRegion uint64 `toml:"single_region_size"`

	// ArenaCapacity and TcacheClasses record the table/array bounds a
	// config file was written against, for diagnostics; both size
	// compile-time arrays (registry.arenas, tcache.bins) and cannot
	// actually be grown or shrunk at runtime. Whatever value is set here,
	// the compiled-in registryCapacity/tcacheClasses stay in force.
	ArenaCapacity int `toml:"arena_capacity"`
	TcacheClasses int `toml:"tcache_classes"`

	TcacheMaxCount int `toml:"tcache_max_count"`
}

func defaultTunables() tunables {
	return tunables{
		RegionSize:     DefaultRegionSize,
		SingleRegion:   SingleRegionSize,
		ArenaCapacity:  registryCapacity,
		TcacheClasses:  tcacheClasses,
		TcacheMaxCount: tcacheMaxCount,
	}
}

var activeConfig = defaultTunables()
var configLoaded bool

// LoadConfig reads path (a galloc.toml) and applies it as the active
// configuration. Must be called before the first Alloc/Free/NewSingleArena
// of the process. The registry and tcache state are sized at first use
// and won't pick up a later change.
//
// Fields left zero in the file keep their built-in default.
func LoadConfig(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	cfg := defaultTunables()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return err
	}
	applyEnvOverrides(&cfg)
	activeConfig = cfg
	configLoaded = true
	latchRuntimeTunables()
	return nil
}

// latchRuntimeTunables pushes the subset of activeConfig that isn't a
// compile-time array bound into the package vars that actually consult
// it. TcacheClasses is deliberately excluded: it sizes tcache.bins and
// can only ever be the const in tcache.go.
func latchRuntimeTunables() {
	if activeConfig.TcacheMaxCount > 0 {
		tcacheMaxCount = activeConfig.TcacheMaxCount
	}
}

// applyEnvOverrides lets GALLOC_REGION_SIZE, GALLOC_ARENA_CAPACITY,
// GALLOC_TCACHE_CLASSES and GALLOC_TCACHE_MAX_COUNT win over whatever a
// galloc.toml set, for container/CI tuning without editing the file.
func applyEnvOverrides(cfg *tunables) {
	if v, ok := envUint("GALLOC_REGION_SIZE"); ok {
		cfg.RegionSize = v
	}
	if v, ok := envUint("GALLOC_SINGLE_REGION_SIZE"); ok {
		cfg.SingleRegion = v
	}
	if v, ok := envInt("GALLOC_ARENA_CAPACITY"); ok {
		cfg.ArenaCapacity = v
	}
	if v, ok := envInt("GALLOC_TCACHE_CLASSES"); ok {
		cfg.TcacheClasses = v
	}
	if v, ok := envInt("GALLOC_TCACHE_MAX_COUNT"); ok {
		cfg.TcacheMaxCount = v
	}
}

func envUint(name string) (uint64, bool) {
	s, ok := os.LookupEnv(name)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func envInt(name string) (int, bool) {
	s, ok := os.LookupEnv(name)
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return v, true
}

func init() {
	applyEnvOverrides(&activeConfig)
	latchRuntimeTunables()
}

// regionSize is what registry.go's initRegistry calls to size each of its
// arena slots.
func regionSize() uintptr {
	if activeConfig.RegionSize == 0 {
		return DefaultRegionSize
	}
	return uintptr(activeConfig.RegionSize)
}

// singleRegionSize is NewSingleArena's default when called with 0.
func singleRegionSize() uintptr {
	if activeConfig.SingleRegion == 0 {
		return SingleRegionSize
	}
	return uintptr(activeConfig.SingleRegion)
}
