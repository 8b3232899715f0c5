package loader

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/nathoo/wayfarer/types"
)

// collector accumulates Lua definitions during file execution.
type collector struct {
	game     *lua.LTable
	player   *lua.LTable
	rooms    []rawRoom
	entities []rawEntity
}

// LoadWorld loads a world from a directory of .lua files or from a single
// .yaml/.yml file.
func LoadWorld(path string) (types.WorldDef, error) {
	info, err := os.Stat(path)
	if err != nil {
		return types.WorldDef{}, fmt.Errorf("opening world %s: %w", path, err)
	}
	if info.IsDir() {
		return Load(path)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return LoadYAML(path)
	case ".lua":
		return LoadFiles(path)
	}
	return types.WorldDef{}, fmt.Errorf("world %s: expected a directory, .lua or .yaml file", path)
}

// Load reads all .lua files from dir, compiles them into a world
// definition and validates references. The Lua VM is discarded after
// loading.
func Load(dir string) (types.WorldDef, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return types.WorldDef{}, fmt.Errorf("reading game directory %s: %w", dir, err)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".lua") {
			luaFiles = append(luaFiles, e.Name())
		}
	}
	if len(luaFiles) == 0 {
		return types.WorldDef{}, fmt.Errorf("no .lua files found in %s", dir)
	}

	// game.lua first, rest alphabetical.
	luaFiles = sortedLuaFiles(luaFiles)
	paths := make([]string, len(luaFiles))
	for i, f := range luaFiles {
		paths[i] = filepath.Join(dir, f)
	}
	return LoadFiles(paths...)
}

// LoadFiles runs the given Lua files in order in one sandboxed VM.
func LoadFiles(paths ...string) (types.WorldDef, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	openSafeLibs(L)
	sandbox(L)

	coll := &collector{}
	registerAPI(L, coll)

	for _, path := range paths {
		if err := L.DoFile(path); err != nil {
			return types.WorldDef{}, fmt.Errorf("executing %s: %w", filepath.Base(path), err)
		}
	}

	def, err := compile(coll)
	if err != nil {
		return types.WorldDef{}, fmt.Errorf("compiling game data: %w", err)
	}
	if err := Validate(def); err != nil {
		return types.WorldDef{}, err
	}
	return def, nil
}

// LoadYAML reads a world written as a nested YAML document.
func LoadYAML(path string) (types.WorldDef, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return types.WorldDef{}, fmt.Errorf("reading world %s: %w", path, err)
	}
	return ParseYAML(raw)
}

// ParseYAML decodes and validates a YAML world. Unknown fields are
// rejected so typos do not silently vanish.
func ParseYAML(raw []byte) (types.WorldDef, error) {
	var def types.WorldDef
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&def); err != nil {
		return types.WorldDef{}, fmt.Errorf("parsing world: %w", err)
	}
	if err := Validate(def); err != nil {
		return types.WorldDef{}, err
	}
	return def, nil
}

// openSafeLibs opens only the safe subset of Lua standard libraries.
func openSafeLibs(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// sandbox removes globals that reach outside the script.
func sandbox(L *lua.LState) {
	dangerous := []string{
		"dofile", "loadfile", "load", "loadstring", "require",
		"rawset", "rawget", "rawequal",
		"collectgarbage",
	}
	for _, name := range dangerous {
		L.SetGlobal(name, lua.LNil)
	}

	// Worlds must come out the same on every load.
	if mathTbl, ok := L.GetGlobal("math").(*lua.LTable); ok {
		mathTbl.RawSetString("random", lua.LNil)
		mathTbl.RawSetString("randomseed", lua.LNil)
	}
}

func logWarnings(warnings []string) {
	for _, w := range warnings {
		zap.L().Warn("world warning", zap.String("detail", w))
	}
}
