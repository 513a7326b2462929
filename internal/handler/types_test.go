package handler

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLooseString(t *testing.T) {
	var req struct {
		A *looseString `json:"a"`
		B *looseString `json:"b"`
		C *looseString `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"weekly","b":14}`), &req))
	assert.Equal(t, "weekly", *req.A.ptr())
	assert.Equal(t, "14", *req.B.ptr())
	assert.Nil(t, req.C.ptr())

	assert.Error(t, json.Unmarshal([]byte(`{"a":true}`), &req))
}

func TestDateTime(t *testing.T) {
	cases := map[string]time.Time{
		`"2024-03-01T10:30:00+01:00"`: time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC),
		`"2024-03-01T10:30"`:          time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC),
		`"2024-03-01"`:                time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	for raw, want := range cases {
		var d dateTime
		require.NoError(t, json.Unmarshal([]byte(raw), &d), raw)
		assert.True(t, d.Equal(want), raw)
	}

	var empty *dateTime
	assert.Nil(t, empty.ptr())

	var d dateTime
	require.NoError(t, json.Unmarshal([]byte(`""`), &d))
	assert.Nil(t, d.ptr())
	assert.Error(t, json.Unmarshal([]byte(`"next tuesday"`), &d))
}
