package translate

import (
	"testing"

	"github.com/unmute-ai/signplay/sign"
)

func TestBuildPlan(t *testing.T) {
	t.Parallel()

	v := testVocab()
	plan := BuildPlan(v, []string{"I", "WANT", "ZEBRA"}, "https://assets.example.com")

	if len(plan) != 3 {
		t.Fatalf("plan length = %d, want 3", len(plan))
	}

	first := plan[0]
	if first.Kind != sign.KindSign || first.SignName != "i_0" {
		t.Fatalf("first item = %+v, want sign i_0", first)
	}
	if want := "https://assets.example.com/sgsl_dataset/i_0/i_0.gif"; first.Assets.Gif != want {
		t.Fatalf("gif URL = %q, want %q", first.Assets.Gif, want)
	}

	if plan[2].Kind != sign.KindText || plan[2].Token != "ZEBRA" {
		t.Fatalf("unknown token item = %+v, want text fallback", plan[2])
	}
}

func TestBuildPlanWithoutAssetBase(t *testing.T) {
	t.Parallel()

	plan := BuildPlan(testVocab(), []string{"WANT"}, "")
	if plan[0].Assets.Gif != "" {
		t.Fatalf("gif URL = %q, want empty without an asset base", plan[0].Assets.Gif)
	}
}
