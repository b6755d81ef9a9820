package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvString(t *testing.T) {
	t.Setenv("GP_STRING", "")
	assert.Equal(t, "fallback", GetEnvString("GP_STRING", "fallback"))

	t.Setenv("GP_STRING", "value")
	assert.Equal(t, "value", GetEnvString("GP_STRING", "fallback"))
}

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"", 7},
		{"42", 42},
		{" 13 ", 13},
		{"-3", -3},
		{"abc", 7},
		{"4.5", 7},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Setenv("GP_INT", tt.raw)
			assert.Equal(t, tt.want, GetEnvInt("GP_INT", 7))
		})
	}
}

func TestGetEnvFloat(t *testing.T) {
	t.Setenv("GP_FLOAT", "2.5")
	assert.InDelta(t, 2.5, GetEnvFloat("GP_FLOAT", 1), 1e-9)

	t.Setenv("GP_FLOAT", "fast")
	assert.InDelta(t, 1.0, GetEnvFloat("GP_FLOAT", 1), 1e-9)
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{"", true},
		{"false", false},
		{"0", false},
		{"TRUE", true},
		{"yes", true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Setenv("GP_BOOL", tt.raw)
			assert.Equal(t, tt.want, GetEnvBool("GP_BOOL", true))
		})
	}
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("GP_DURATION", "90s")
	assert.Equal(t, 90*time.Second, GetEnvDuration("GP_DURATION", time.Minute))

	t.Setenv("GP_DURATION", "soon")
	assert.Equal(t, time.Minute, GetEnvDuration("GP_DURATION", time.Minute))
}

func TestGetEnvStringList(t *testing.T) {
	t.Setenv("GP_LIST", " a, ,b ,c")
	assert.Equal(t, []string{"a", "b", "c"}, GetEnvStringList("GP_LIST", nil))

	t.Setenv("GP_LIST", " , ")
	assert.Equal(t, []string{"x"}, GetEnvStringList("GP_LIST", []string{"x"}))
}

func TestValidators(t *testing.T) {
	assert.NoError(t, Positive(time.Second))
	assert.Error(t, Positive(time.Duration(0)))
	assert.Error(t, Positive(-1.5))
	assert.NoError(t, Positive(3))

	assert.NoError(t, InRange(time.Minute, time.Second, time.Hour))
	assert.Error(t, InRange(time.Millisecond, time.Second, time.Hour))
	assert.Error(t, InRange(2*time.Hour, time.Second, time.Hour))
	assert.Error(t, InRange(time.Minute, time.Hour, time.Second))
	assert.NoError(t, InRange(0, 0, 10))
}
