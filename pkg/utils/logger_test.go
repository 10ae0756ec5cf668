package utils

import (
	"bufio"
	"encoding/json"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

type logRecord struct {
	Level string `json:"level"`
	Msg   string `json:"msg"`
	Error string `json:"error"`
	CID   string `json:"cid"`
}

func readRecords(t *testing.T) []logRecord {
	t.Helper()
	f, err := os.Open(LogFile)
	require.NoError(t, err)
	defer f.Close()

	var records []logRecord
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var rec logRecord
		if json.Unmarshal(scanner.Bytes(), &rec) == nil {
			records = append(records, rec)
		}
	}
	require.NoError(t, scanner.Err())
	return records
}

func TestLogger_JSONModeWritesJSONWithCID(t *testing.T) {
	orig, _ := os.Getwd()
	dir := t.TempDir()
	defer os.Chdir(orig)
	require.NoError(t, os.Chdir(dir))

	t.Setenv("DROPDOWN_JSON_LOGS", "1")
	t.Setenv("DROPDOWN_CORRELATION_ID", "abc123")

	l := GetLogger(false)
	l.Log("hello world")
	l.Debugf("hidden %d", 1)
	l.LogError(errors.New("boom"))
	l.LogEvent("tui", "toggle_open", false)

	l = GetLogger(true)
	l.LogEvent("tui", "select", false)
	require.NoError(t, l.Close())

	records := readRecords(t)
	require.Len(t, records, 3)
	require.Equal(t, logRecord{Level: "info", Msg: "hello world", CID: "abc123"}, records[0])
	require.Equal(t, logRecord{Level: "error", Error: "boom", CID: "abc123"}, records[1])
	require.Equal(t, "debug", records[2].Level)
	require.Equal(t, "Ignored event: tui select", records[2].Msg)
}
