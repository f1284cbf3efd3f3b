package editorconfig

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"

	"cubetea/internal/render"
	"cubetea/internal/shade"
)

// ConfigPath is the path to the editor config file, relative to the process working directory.
const ConfigPath = "config/editor.json"

// AutosaveName is the autosave file name inside the OS temp directory.
const AutosaveName = "cubetea_AUTO.json"

// EnvPrefix starts every environment variable ApplyEnv reads.
const EnvPrefix = "CUBETEA_"

// Prefs holds editor preferences. Persisted across runs; scenes are saved separately.
type Prefs struct {
	TranslationStep float64  `json:"translation_step"`
	RotationStepDeg float64  `json:"rotation_step_deg"`
	ScaleFactor     float64  `json:"scale_factor"`
	Workers         int      `json:"workers"`
	RenderMode      string   `json:"render_mode"`
	AutosavePath    string   `json:"autosave_path"`
	PrimitivesDir   string   `json:"primitives_dir"`
	PivotColor      [3]uint8 `json:"pivot_color"`
	SelectColor     [3]uint8 `json:"select_color"`
}

// Default returns the stock preferences: 0.1 unit moves, 6° turns, wireframe view.
func Default() Prefs {
	return Prefs{
		TranslationStep: 0.1,
		RotationStepDeg: 6,
		ScaleFactor:     1,
		Workers:         0,
		RenderMode:      render.Wireframe.String(),
		AutosavePath:    filepath.Join(os.TempDir(), AutosaveName),
		PrimitivesDir:   "assets/primitives",
		PivotColor:      [3]uint8{255, 180, 100},
		SelectColor:     [3]uint8{255, 255, 180},
	}
}

// RotationStep is RotationStepDeg in radians.
func (p Prefs) RotationStep() float64 {
	return p.RotationStepDeg * math.Pi / 180
}

// Mode parses RenderMode, falling back to wireframe.
func (p Prefs) Mode() render.Mode {
	m, err := render.ParseMode(p.RenderMode)
	if err != nil {
		return render.Wireframe
	}
	return m
}

func (p Prefs) Pivot() shade.Color {
	return shade.Color{R: p.PivotColor[0], G: p.PivotColor[1], B: p.PivotColor[2]}
}

func (p Prefs) Select() shade.Color {
	return shade.Color{R: p.SelectColor[0], G: p.SelectColor[1], B: p.SelectColor[2]}
}

// Validate reports the first preference that the editor cannot work with.
func (p Prefs) Validate() error {
	switch {
	case p.TranslationStep <= 0:
		return errors.Errorf("translation_step must be positive, got %g", p.TranslationStep)
	case p.RotationStepDeg <= 0:
		return errors.Errorf("rotation_step_deg must be positive, got %g", p.RotationStepDeg)
	case p.ScaleFactor <= 0:
		return errors.Errorf("scale_factor must be positive, got %g", p.ScaleFactor)
	case p.Workers < 0:
		return errors.Errorf("workers must not be negative, got %d", p.Workers)
	}
	if _, err := render.ParseMode(p.RenderMode); err != nil {
		return err
	}
	return nil
}

// Load reads preferences from ConfigPath. See LoadFrom.
func Load() (Prefs, error) {
	return LoadFrom(ConfigPath)
}

// LoadFrom reads preferences from path. Keys missing from the file keep their defaults. If the
// file is missing or invalid, returns Default() and does not create a file.
func LoadFrom(path string) (Prefs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), nil
	}
	p := Default()
	if err := json.Unmarshal(data, &p); err != nil {
		return Default(), nil
	}
	if err := p.Validate(); err != nil {
		return Default(), nil
	}
	return p, nil
}

// Save writes preferences to ConfigPath.
func Save(p Prefs) error {
	return SaveTo(ConfigPath, p)
}

// SaveTo writes preferences to path, creating the directory if needed.
func SaveTo(path string, p Prefs) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overrides preferences from CUBETEA_* variables (CUBETEA_TRANSLATION_STEP,
// CUBETEA_ROTATION_STEP_DEG, CUBETEA_SCALE_FACTOR, CUBETEA_WORKERS, CUBETEA_RENDER_MODE,
// CUBETEA_AUTOSAVE_PATH, CUBETEA_PRIMITIVES_DIR). Unset variables are ignored.
func ApplyEnv(p Prefs) (Prefs, error) {
	floats := []struct {
		key string
		dst *float64
	}{
		{"TRANSLATION_STEP", &p.TranslationStep},
		{"ROTATION_STEP_DEG", &p.RotationStepDeg},
		{"SCALE_FACTOR", &p.ScaleFactor},
	}
	for _, f := range floats {
		v, ok := os.LookupEnv(EnvPrefix + f.key)
		if !ok {
			continue
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return p, errors.Wrapf(err, "%s%s", EnvPrefix, f.key)
		}
		*f.dst = n
	}
	if v, ok := os.LookupEnv(EnvPrefix + "WORKERS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return p, errors.Wrapf(err, "%sWORKERS", EnvPrefix)
		}
		p.Workers = n
	}
	strs := map[string]*string{
		"RENDER_MODE":    &p.RenderMode,
		"AUTOSAVE_PATH":  &p.AutosavePath,
		"PRIMITIVES_DIR": &p.PrimitivesDir,
	}
	for key, dst := range strs {
		if v, ok := os.LookupEnv(EnvPrefix + key); ok {
			*dst = v
		}
	}
	return p, p.Validate()
}
