package resources

type ResourceType int

/** @brief Pre-defined resource types. */
const (
	/** @brief Not a recognised resource. */
	ResourceTypeNone ResourceType = iota
	/** @brief Text resource type. */
	ResourceTypeText
	/** @brief Binary resource type. */
	ResourceTypeBinary
	/** @brief Level description (bodies and lights). */
	ResourceTypeLevel
	/** @brief Custom resource type. Used by loaders outside the core engine. */
	ResourceTypeCustom
)

func (t ResourceType) String() string {
	switch t {
	case ResourceTypeText:
		return "text"
	case ResourceTypeBinary:
		return "binary"
	case ResourceTypeLevel:
		return "level"
	case ResourceTypeCustom:
		return "custom"
	default:
		return "none"
	}
}

/**
 * @brief A generic structure for a resource. All resource loaders
 * load data into these.
 */
type Resource struct {
	/** @brief The type of the loader which handled this resource. */
	Type ResourceType
	/** @brief The name of the resource. */
	Name string
	/** @brief The full file path of the resource. */
	FullPath string
	/** @brief The size of the resource file in bytes. */
	DataSize uint64
	/** @brief The resource data. */
	Data interface{}
}

/**
 * @brief A level as authored on disk: the static bodies of the world and
 * the lights that illuminate it.
 */
type LevelConfig struct {
	Name   string        `toml:"name" yaml:"name"`
	Bodies []BodyConfig  `toml:"bodies" yaml:"bodies"`
	Lights []LightConfig `toml:"lights" yaml:"lights"`
}

/**
 * @brief One body. Type and Surface are free-form names resolved by the
 * physics classifiers; unknown names fall back to defaults.
 */
type BodyConfig struct {
	Name    string `toml:"name" yaml:"name"`
	Type    string `toml:"type" yaml:"type"`
	Surface string `toml:"surface" yaml:"surface"`

	/** @brief sphere */
	Center [3]float32 `toml:"center" yaml:"center"`
	Radius float32    `toml:"radius" yaml:"radius"`

	/** @brief aabb */
	Min [3]float32 `toml:"min" yaml:"min"`
	Max [3]float32 `toml:"max" yaml:"max"`

	/** @brief plane */
	Normal   [3]float32 `toml:"normal" yaml:"normal"`
	Distance float32    `toml:"distance" yaml:"distance"`

	/** @brief triangle_mesh; three indices per triangle. */
	Vertices [][3]float32 `toml:"vertices" yaml:"vertices"`
	Indices  []uint32     `toml:"indices" yaml:"indices"`
}

type LightConfig struct {
	Type      string     `toml:"type" yaml:"type"`
	Position  [3]float32 `toml:"position" yaml:"position"`
	Direction [3]float32 `toml:"direction" yaml:"direction"`
	Color     [3]float32 `toml:"color" yaml:"color"`
	Intensity float32    `toml:"intensity" yaml:"intensity"`
	Radius    float32    `toml:"radius" yaml:"radius"`
	/** @brief Spot cone angles in degrees. */
	Inner float32 `toml:"inner" yaml:"inner"`
	Outer float32 `toml:"outer" yaml:"outer"`
}
