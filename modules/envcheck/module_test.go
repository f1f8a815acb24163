package envcheck

import (
	"context"
	"strings"
	"testing"
)

func TestInitEnvCheck_AllPresent(t *testing.T) {
	t.Setenv("ENVCHECK_TEST_HOST", "localhost")
	t.Setenv("ENVCHECK_TEST_PORT", "5432")

	instance, err := InitEnvCheck(context.Background(), &Settings{
		Names: []string{"ENVCHECK_TEST_HOST", "ENVCHECK_TEST_PORT"},
	})
	if err != nil {
		t.Fatalf("InitEnvCheck() returned an unexpected error: %v", err)
	}

	found := instance.(map[string]string)
	if found["ENVCHECK_TEST_HOST"] != "localhost" || found["ENVCHECK_TEST_PORT"] != "5432" {
		t.Errorf("unexpected values: %v", found)
	}
}

func TestInitEnvCheck_MissingVariableFails(t *testing.T) {
	t.Setenv("ENVCHECK_TEST_HOST", "localhost")

	_, err := InitEnvCheck(context.Background(), &Settings{
		Names: []string{"ENVCHECK_TEST_HOST", "ENVCHECK_TEST_ABSENT"},
	})
	if err == nil {
		t.Fatal("expected an error for a missing variable")
	}
	if !strings.Contains(err.Error(), "ENVCHECK_TEST_ABSENT") {
		t.Errorf("error %q does not name the missing variable", err)
	}
}

func TestInitEnvCheck_EmptyValueCountsAsMissing(t *testing.T) {
	t.Setenv("ENVCHECK_TEST_EMPTY", "")

	if _, err := InitEnvCheck(context.Background(), &Settings{
		Names: []string{"ENVCHECK_TEST_EMPTY"},
	}); err == nil {
		t.Fatal("expected an empty variable to fail the check")
	}
}
