package cmd

import (
	"reflect"
	"testing"

	"github.com/samuelfneumann/qmaze/agent"
	"github.com/samuelfneumann/qmaze/experiment"
	"github.com/sanity-io/litter"
	"github.com/spf13/viper"
)

func TestReadConfigDefaults(t *testing.T) {
	viper.Reset()

	cfg, err := ReadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if want := experiment.DefaultConfig(); !reflect.DeepEqual(cfg, want) {
		t.Errorf("config = %s, want %s", litter.Sdump(cfg), litter.Sdump(want))
	}
}

func TestReadConfigOverrides(t *testing.T) {
	viper.Reset()
	viper.Set("model", "QTABLETRACEMODEL")
	viper.Set("seed", 12)
	viper.Set("stop-at-convergence", true)
	viper.Set("eligibility-decay", 0.5)

	cfg, err := ReadConfig()
	if err != nil {
		t.Fatal(err)
	}

	want := experiment.DefaultConfig()
	want.Agent = agent.QTableTraceModel
	want.Seed = 12
	want.StopAtConvergence = true
	want.Hyperparameters.EligibilityDecay = 0.5
	if !reflect.DeepEqual(cfg, want) {
		t.Errorf("config = %s, want %s", litter.Sdump(cfg), litter.Sdump(want))
	}
}

func TestReadConfigUnknownModel(t *testing.T) {
	viper.Reset()
	viper.Set("model", "SarsaModel")

	if cfg, err := ReadConfig(); err == nil {
		t.Errorf("expected error, got %s", litter.Sdump(cfg))
	}
}
