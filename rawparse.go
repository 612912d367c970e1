package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/tidwall/gjson"
)

// ErrInvalidData is returned for game data or archives that are not usable JSON.
var ErrInvalidData = errors.New("invalid data")

type statBlock = DerivedStats

type iCharacter struct {
	record CharacterRecord
	base   statBlock
	growth statBlock
	// gains[attribute] is the stat increase per allocated point.
	gains map[string]statBlock
}

// GameData is the parsed character catalog. It is read-only after loading
// and safe for concurrent use.
type GameData struct {
	chars []iCharacter
	byID  map[string]int
}

// AllCharacters returns the catalog in file order.
func (gd *GameData) AllCharacters() []CharacterRecord {
	out := make([]CharacterRecord, len(gd.chars))
	for i := range gd.chars {
		out[i] = gd.chars[i].record
	}
	return out
}

// Character looks up a record by id.
func (gd *GameData) Character(id string) (CharacterRecord, bool) {
	i, ok := gd.byID[id]
	if !ok {
		return CharacterRecord{}, false
	}
	return gd.chars[i].record, true
}

// CalculateStats applies level growth and attribute gains on top of base
// stats. Unknown characters or levels below 1 have no stats.
func (gd *GameData) CalculateStats(id string, level int, attributes map[string]int) (DerivedStats, bool) {
	i, ok := gd.byID[id]
	if !ok || level < 1 {
		return DerivedStats{}, false
	}
	ch := &gd.chars[i]
	s := addStats(ch.base, scaleStats(ch.growth, float64(level-1)))
	for attr, pts := range attributes {
		if g, ok := ch.gains[attr]; ok && pts > 0 {
			s = addStats(s, scaleStats(g, float64(pts)))
		}
	}
	return sanitizeStats(s), true
}

func addStats(a, b statBlock) statBlock {
	return statBlock{
		Attack:     a.Attack + b.Attack,
		Defense:    a.Defense + b.Defense,
		Speed:      a.Speed + b.Speed,
		HP:         a.HP + b.HP,
		CritRate:   a.CritRate + b.CritRate,
		CritDamage: a.CritDamage + b.CritDamage,
		Magic:      a.Magic + b.Magic,
	}
}

func scaleStats(a statBlock, k float64) statBlock {
	return statBlock{
		Attack:     a.Attack * k,
		Defense:    a.Defense * k,
		Speed:      a.Speed * k,
		HP:         a.HP * k,
		CritRate:   a.CritRate * k,
		CritDamage: a.CritDamage * k,
		Magic:      a.Magic * k,
	}
}

func parseStatBlock(v gjson.Result) statBlock {
	return statBlock{
		Attack:     v.Get("attack").Float(),
		Defense:    v.Get("defense").Float(),
		Speed:      v.Get("speed").Float(),
		HP:         v.Get("hp").Float(),
		CritRate:   v.Get("critRate").Float(),
		CritDamage: v.Get("critDamage").Float(),
		Magic:      v.Get("magic").Float(),
	}
}

func parseAbilities(v gjson.Result) []Ability {
	var out []Ability
	v.ForEach(func(_, a gjson.Result) bool {
		if a.Type == gjson.String {
			out = append(out, Ability{Name: a.String()})
			return true
		}
		out = append(out, Ability{
			Name: a.Get("name").String(),
			Tag:  parseAbilityTag(a.Get("tag").String()),
		})
		return true
	})
	return out
}

// ParseGameData reads the character catalog from a JSON document of the form
// {"characters": [{"id", "name", "element", "abilities", "baseStats",
// "growth", "attributeGains"}]}.
func ParseGameData(dataJSON string) (*GameData, error) {
	if !gjson.Valid(dataJSON) {
		return nil, fmt.Errorf("%w: game data is not valid JSON", ErrInvalidData)
	}
	gd := &GameData{byID: make(map[string]int)}
	var perr error
	gjson.Get(dataJSON, "characters").ForEach(func(_, v gjson.Result) bool {
		id := v.Get("id").String()
		if id == "" {
			perr = fmt.Errorf("%w: character without id at index %d", ErrInvalidData, len(gd.chars))
			return false
		}
		if _, dup := gd.byID[id]; dup {
			perr = fmt.Errorf("%w: duplicate character id %q", ErrInvalidData, id)
			return false
		}
		elemName := v.Get("element").String()
		elem, ok := parseElement(elemName)
		if !ok {
			logf("[load] character %s: unknown element %q, treating as neutral", id, elemName)
		}
		ch := iCharacter{
			record: CharacterRecord{
				ID:        id,
				Name:      v.Get("name").String(),
				Element:   elem,
				Abilities: parseAbilities(v.Get("abilities")),
			},
			base:   parseStatBlock(v.Get("baseStats")),
			growth: parseStatBlock(v.Get("growth")),
			gains:  make(map[string]statBlock),
		}
		if ch.record.Name == "" {
			ch.record.Name = id
		}
		v.Get("attributeGains").ForEach(func(k, g gjson.Result) bool {
			ch.gains[k.String()] = parseStatBlock(g)
			return true
		})
		gd.byID[id] = len(gd.chars)
		gd.chars = append(gd.chars, ch)
		return true
	})
	if perr != nil {
		return nil, perr
	}
	return gd, nil
}

// BuildArchive holds the player's saved builds keyed by character id.
type BuildArchive struct {
	builds map[string]Build
}

// LoadBuild returns a copy of the saved build for id.
func (a *BuildArchive) LoadBuild(id string) (Build, bool) {
	if a == nil {
		return Build{}, false
	}
	b, ok := a.builds[id]
	if !ok {
		return Build{}, false
	}
	attrs := make(map[string]int, len(b.Attributes))
	for k, v := range b.Attributes {
		attrs[k] = v
	}
	b.Attributes = attrs
	return b, true
}

// ParseArchive reads {"builds": {"<id>": {"level": n, "attributes": {...}}}}.
func ParseArchive(archJSON string) (*BuildArchive, error) {
	if !gjson.Valid(archJSON) {
		return nil, fmt.Errorf("%w: archive is not valid JSON", ErrInvalidData)
	}
	a := &BuildArchive{builds: make(map[string]Build)}
	gjson.Get(archJSON, "builds").ForEach(func(k, v gjson.Result) bool {
		b := Build{
			Level:      int(v.Get("level").Int()),
			Attributes: make(map[string]int),
		}
		if b.Level < 1 {
			b.Level = 1
		}
		v.Get("attributes").ForEach(func(ak, av gjson.Result) bool {
			b.Attributes[ak.String()] = int(av.Int())
			return true
		})
		a.builds[k.String()] = b
		return true
	})
	return a, nil
}

// LoadRawData reads the game data file and, when archivePath is not empty,
// the player archive.
func LoadRawData(dataPath, archivePath string) (*GameData, *BuildArchive, error) {
	rawBytes, err := os.ReadFile(dataPath)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", dataPath, err)
	}
	gd, err := ParseGameData(string(rawBytes))
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", dataPath, err)
	}
	if archivePath == "" {
		return gd, &BuildArchive{}, nil
	}
	archBytes, err := os.ReadFile(archivePath)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", archivePath, err)
	}
	arch, err := ParseArchive(string(archBytes))
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", archivePath, err)
	}
	return gd, arch, nil
}
