package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// yamlScenario mirrors Scenario with yaml tags; kept separate so the
// in-memory Scenario type stays free of serialization concerns.
type yamlScenario struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	MapSize     struct {
		Width  float64 `yaml:"width"`
		Height float64 `yaml:"height"`
	} `yaml:"mapSize"`
	PlayerUnits []yamlUnit     `yaml:"playerUnits"`
	EnemyUnits  []yamlUnit     `yaml:"enemyUnits"`
	Obstacles   []yamlObstacle `yaml:"obstacles"`
	Objectives  []string       `yaml:"objectives"`
}

type yamlUnit struct {
	Type     string `yaml:"type"`
	Position struct {
		X float64 `yaml:"x"`
		Z float64 `yaml:"z"`
	} `yaml:"position"`
}

type yamlObstacle struct {
	Type     string `yaml:"type"`
	Position struct {
		X float64 `yaml:"x"`
		Z float64 `yaml:"z"`
	} `yaml:"position"`
	Rotation float64 `yaml:"rotation"`
	Length   float64 `yaml:"length"`
	Scale    float64 `yaml:"scale"`
}

// LoadYAML reads a Scenario from a YAML document. This is a
// convenience layer for the demo CLI and tests; the engine's primary
// input remains the in-memory Scenario struct.
func LoadYAML(data []byte) (Scenario, error) {
	var doc yamlScenario
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Scenario{}, fmt.Errorf("scenario: parsing yaml: %w", err)
	}

	sc := Scenario{
		ID:          doc.ID,
		Name:        doc.Name,
		Description: doc.Description,
		MapWidth:    doc.MapSize.Width,
		MapHeight:   doc.MapSize.Height,
		Objectives:  doc.Objectives,
	}
	for _, u := range doc.PlayerUnits {
		sc.PlayerUnits = append(sc.PlayerUnits, UnitSpec{Type: u.Type, X: u.Position.X, Z: u.Position.Z})
	}
	for _, u := range doc.EnemyUnits {
		sc.EnemyUnits = append(sc.EnemyUnits, UnitSpec{Type: u.Type, X: u.Position.X, Z: u.Position.Z})
	}
	for _, o := range doc.Obstacles {
		sc.Obstacles = append(sc.Obstacles, ObstacleSpec{
			Type: o.Type, X: o.Position.X, Z: o.Position.Z,
			Rotation: o.Rotation, Length: o.Length, Scale: o.Scale,
		})
	}
	return sc, nil
}

// LoadYAMLFile reads and parses a scenario YAML file from disk.
func LoadYAMLFile(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("scenario: reading %s: %w", path, err)
	}
	return LoadYAML(data)
}
