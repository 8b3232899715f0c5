// Package save implements YAML serialization and deserialization of a
// running game.
package save

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/nathoo/wayfarer/engine"
	"github.com/nathoo/wayfarer/engine/world"
	"github.com/nathoo/wayfarer/types"
)

// Version is the save format written by Encode.
const Version = 1

var ErrVersion = errors.New("unsupported save version")

// Capture records everything needed to resume: the world graph as a
// definition, the current room, the session memory and the RNG position.
func Capture(e *engine.Engine) types.SaveData {
	data := types.SaveData{
		Version: Version,
		World:   world.Snapshot(e.World),
		Current: e.World.Current,
		Session: e.Session(),
	}
	if rng, ok := e.Dice.(*engine.RNG); ok {
		data.RNGSeed = rng.Seed()
		data.RNGPos = rng.Position()
	}
	return data
}

// Encode serializes save data to YAML bytes.
func Encode(data types.SaveData) ([]byte, error) {
	out, err := yaml.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encoding save: %w", err)
	}
	return out, nil
}

// Decode deserializes YAML bytes into save data.
func Decode(raw []byte) (types.SaveData, error) {
	var data types.SaveData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return types.SaveData{}, fmt.Errorf("decoding save: %w", err)
	}
	if data.Version != Version {
		return types.SaveData{}, fmt.Errorf("%w: %d", ErrVersion, data.Version)
	}
	return data, nil
}

// Restore replaces the engine's world and session with the saved ones.
// The engine is untouched when the saved world does not build. Engines
// running on injected dice keep them; a seeded RNG is replayed to the
// saved position.
func Restore(e *engine.Engine, data types.SaveData) error {
	w, err := world.Build(data.World)
	if err != nil {
		return fmt.Errorf("restoring world: %w", err)
	}
	if data.Current != "" {
		if err := w.Enter(data.Current); err != nil {
			return fmt.Errorf("restoring world: %w", err)
		}
	}

	e.World = w
	e.RestoreSession(data.Session)
	if _, ok := e.Dice.(*engine.RNG); ok {
		e.Dice = engine.RestoreRNG(data.RNGSeed, data.RNGPos)
	}
	return nil
}
