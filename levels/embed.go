package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed *.yaml
var LevelsFS embed.FS

// Level is the fixture description of a level. Heights are in quarter-sector
// clicks, coordinates in world units.
type Level struct {
	Name  string `yaml:"name"`
	Rooms []Room `yaml:"rooms"`
	Boxes []Box  `yaml:"boxes"`
	Items []Item `yaml:"items"`
}

type Room struct {
	X         int      `yaml:"x"`
	Z         int      `yaml:"z"`
	SectorsX  int      `yaml:"sectors_x"`
	SectorsZ  int      `yaml:"sectors_z"`
	Floor     int      `yaml:"floor"`
	Ceiling   int      `yaml:"ceiling"`
	Box       *int     `yaml:"box"`
	Walls     bool     `yaml:"walls"`
	Alternate *int     `yaml:"alternate"`
	Sectors   []Sector `yaml:"sectors"`
}

type Sector struct {
	At        [2]int       `yaml:"at"`
	To        *[2]int      `yaml:"to"`
	Floor     *int         `yaml:"floor"`
	Ceiling   *int         `yaml:"ceiling"`
	Wall      bool         `yaml:"wall"`
	Box       *int         `yaml:"box"`
	Material  string       `yaml:"material"`
	Slant     *Slant       `yaml:"slant"`
	Roof      *Slant       `yaml:"roof"`
	Death     bool         `yaml:"death"`
	Portal    *int         `yaml:"portal"`
	RoomBelow *int         `yaml:"room_below"`
	RoomAbove *int         `yaml:"room_above"`
	Trigger   *TriggerSpec `yaml:"trigger"`
}

type Slant struct {
	X int `yaml:"x"`
	Z int `yaml:"z"`
}

type TriggerSpec struct {
	Kind    string       `yaml:"kind"`
	Timeout int          `yaml:"timeout"`
	Oneshot bool         `yaml:"oneshot"`
	Mask    *int         `yaml:"mask"`
	Actions []ActionSpec `yaml:"actions"`
}

type ActionSpec struct {
	Func    string `yaml:"func"`
	Param   int    `yaml:"param"`
	Timeout int    `yaml:"timeout"`
	Oneshot bool   `yaml:"oneshot"`
}

type Box struct {
	X         [2]int `yaml:"x"`
	Z         [2]int `yaml:"z"`
	Floor     int    `yaml:"floor"`
	Zones     Zones  `yaml:"zones"`
	AltZones  *Zones `yaml:"alt_zones"`
	Blockable bool   `yaml:"blockable"`
	Blocked   bool   `yaml:"blocked"`
	Overlaps  []int  `yaml:"overlaps"`
}

type Zones struct {
	Ground1 int `yaml:"ground1"`
	Ground2 int `yaml:"ground2"`
	Fly     int `yaml:"fly"`
}

type Item struct {
	Kind      string            `yaml:"kind"`
	Pos       [3]int            `yaml:"pos"`
	Room      int               `yaml:"room"`
	Yaw       float64           `yaml:"yaw"`
	Mask      int               `yaml:"mask"`
	Invisible bool              `yaml:"invisible"`
	Props     map[string]string `yaml:"props"`
}

// Parse decodes a fixture from YAML.
func Parse(data []byte) (*Level, error) {
	var lvl Level
	if err := yaml.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("levels: unmarshal: %w", err)
	}
	return &lvl, nil
}

func LoadLevelFromFS(name string) (*Level, error) {
	data, err := read(name)
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", name, err)
	}
	lvl, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("levels: %s: %w", name, err)
	}
	return lvl, nil
}

// read prefers a file on disk under levels/ so edited fixtures load without
// a rebuild.
func read(name string) ([]byte, error) {
	if data, err := os.ReadFile(filepath.Join("levels", filepath.Base(name))); err == nil {
		return data, nil
	}
	return fs.ReadFile(LevelsFS, filepath.Base(name))
}
