package utils

import "testing"

func TestGetEnv(t *testing.T) {
	t.Setenv("FEED_SYNC_TEST_KEY", "value")
	if got := GetEnv("FEED_SYNC_TEST_KEY", "fallback"); got != "value" {
		t.Errorf("GetEnv() = %q, want value", got)
	}
	if got := GetEnv("FEED_SYNC_MISSING_KEY", "fallback"); got != "fallback" {
		t.Errorf("GetEnv() = %q, want fallback", got)
	}
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("FEED_SYNC_TEST_INT", "42")
	if got := GetEnvInt("FEED_SYNC_TEST_INT", 7); got != 42 {
		t.Errorf("GetEnvInt() = %d, want 42", got)
	}
	t.Setenv("FEED_SYNC_TEST_INT", "not a number")
	if got := GetEnvInt("FEED_SYNC_TEST_INT", 7); got != 7 {
		t.Errorf("GetEnvInt() = %d, want 7 on parse failure", got)
	}
	if got := GetEnvInt("FEED_SYNC_MISSING_INT", 7); got != 7 {
		t.Errorf("GetEnvInt() = %d, want 7 when unset", got)
	}
}
