package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/shell-derby/internal/genome"
	"github.com/vovakirdan/shell-derby/internal/race"
	"github.com/vovakirdan/shell-derby/internal/terrain"
)

func TestLoadEmbeddedDefault(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load with no custom path should not fail: %v", err)
	}
	if cfg.Race.TickRate <= 0 {
		t.Errorf("Default config should have a positive tick rate, got %d", cfg.Race.TickRate)
	}
	if len(cfg.Entrants) == 0 {
		t.Error("Default config should ship entrants")
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "race.yaml")
	content := `
race:
  tick_rate: 60
  max_ticks: 100
  lane_count: 4
  base_speed: 12
  energy_drain_rate: 1
  recovery_rate: 2
  max_energy: 100
  sub_steps: 1
  seed: 9
  thresholds:
    low: 0.2
    recovered: 0.6
course:
  name: sprint
entrants:
  - id: one
    archetype: balanced
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Race.TickRate != 60 {
		t.Errorf("Tick rate should be 60, got %d", cfg.Race.TickRate)
	}
	if cfg.Course.Name != "sprint" {
		t.Errorf("Course name should be sprint, got %q", cfg.Course.Name)
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	if _, err := Load("/no/such/file.yaml"); err == nil {
		t.Error("Missing custom path should fail loudly")
	}
}

func TestBuildFromDefault(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}

	raceCfg, entrants, err := cfg.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if err := raceCfg.Validate(); err != nil {
		t.Fatalf("Built race config should validate: %v", err)
	}
	if raceCfg.TrackLength <= 0 || len(raceCfg.Segments) == 0 {
		t.Error("Built config should carry the resolved course")
	}
	if len(entrants) != len(cfg.Entrants) {
		t.Errorf("Expected %d entrants, got %d", len(cfg.Entrants), len(entrants))
	}
	for _, e := range entrants {
		if err := e.Genome.Validate(); err != nil {
			t.Errorf("Entrant %s genome invalid: %v", e.ID, err)
		}
	}
}

func TestBuildIsSeedReproducible(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}

	_, a, err := cfg.Build()
	if err != nil {
		t.Fatal(err)
	}
	_, b, err := cfg.Build()
	if err != nil {
		t.Fatal(err)
	}
	for i := range a {
		if a[i].Genome != b[i].Genome {
			t.Errorf("Entrant %s genome differs between builds of the same config", a[i].ID)
		}
	}
}

func TestBuildInlineCourse(t *testing.T) {
	cfg := DefaultDerbyConfig()
	cfg.Course = CourseSettings{
		Length: 600,
		Segments: []terrain.Segment{
			{Start: 0, End: 300, Type: terrain.Grass},
			{Start: 300, End: 600, Type: terrain.Water},
		},
	}

	raceCfg, _, err := cfg.Build()
	if err != nil {
		t.Fatalf("Inline course build failed: %v", err)
	}
	if raceCfg.CourseID != "custom" {
		t.Errorf("Inline course id should be custom, got %q", raceCfg.CourseID)
	}
	if raceCfg.TrackLength != 600 {
		t.Errorf("Track length should be 600, got %g", raceCfg.TrackLength)
	}
}

func TestBuildMixedCourse(t *testing.T) {
	cfg := DefaultDerbyConfig()
	cfg.Course = CourseSettings{Length: 1000, SegmentLength: 125}

	raceCfg, _, err := cfg.Build()
	if err != nil {
		t.Fatalf("Mixed course build failed: %v", err)
	}
	if raceCfg.CourseID != "mixed" {
		t.Errorf("Mixed course id should be mixed, got %q", raceCfg.CourseID)
	}
}

func TestBuildRejectsBadCourse(t *testing.T) {
	cfg := DefaultDerbyConfig()
	cfg.Course = CourseSettings{Name: "no-such-course"}
	if _, _, err := cfg.Build(); err == nil {
		t.Error("Unknown builtin course should fail")
	}

	cfg.Course = CourseSettings{}
	if _, _, err := cfg.Build(); err == nil {
		t.Error("Missing course should fail")
	}
}

func TestBuildRejectsBadEntrants(t *testing.T) {
	cfg := DefaultDerbyConfig()
	cfg.Entrants = []EntrantSpec{{ID: "x"}}
	if _, _, err := cfg.Build(); err == nil {
		t.Error("Entrant without archetype or genome should fail")
	}

	cfg.Entrants = []EntrantSpec{{ID: "x", Archetype: "unknown"}}
	if _, _, err := cfg.Build(); err == nil {
		t.Error("Unknown archetype should fail")
	}

	bad := genome.Default()
	bad.LegLength = 9
	cfg.Entrants = []EntrantSpec{{ID: "x", Genome: &bad}}
	if _, _, err := cfg.Build(); err == nil {
		t.Error("Invalid inline genome should fail")
	}
}

func TestBuiltRaceRuns(t *testing.T) {
	cfg := DefaultDerbyConfig()
	raceCfg, entrants, err := cfg.Build()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := race.New(raceCfg, entrants); err != nil {
		t.Fatalf("Built configuration should start a race: %v", err)
	}
}

func TestIntensityPresets(t *testing.T) {
	base := DefaultDerbyConfig().Race

	casual := base
	ApplyIntensityPreset(&casual, IntensityCasual)
	if casual.EnergyDrainRate >= base.EnergyDrainRate {
		t.Error("Casual preset should lower energy drain")
	}
	if casual.HazardsEnabled {
		t.Error("Casual preset should disable hazards")
	}

	brutal := base
	ApplyIntensityPreset(&brutal, IntensityBrutal)
	if brutal.EnergyDrainRate <= base.EnergyDrainRate {
		t.Error("Brutal preset should raise energy drain")
	}
	if !brutal.HazardsEnabled {
		t.Error("Brutal preset should enable hazards")
	}

	if !ValidIntensity(IntensityStandard) || ValidIntensity("nightmare") {
		t.Error("Intensity validation mismatch")
	}
}
