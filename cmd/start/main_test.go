package start

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteStartErrors(t *testing.T) {
	dir := t.TempDir()
	badConfig := filepath.Join(dir, "bad.yml")
	require.NoError(t, os.WriteFile(badConfig, []byte("listen_port: [\n"), 0o600))
	badCalendar := filepath.Join(dir, "calendar.yml")
	require.NoError(t, os.WriteFile(badCalendar, []byte("calendars:\n  - name: x\n    business_days: [7]\n"), 0o600))

	tests := map[string]string{
		"ng/ missing config":  filepath.Join(dir, "missing.yml"),
		"ng/ unparsable":      badConfig,
		"ng/ invalid weekday": badCalendar,
	}
	for name, path := range tests {
		t.Run(name, func(t *testing.T) {
			configFilePath = path
			defer func() { configFilePath = defaultConfigFilePath }()

			err := executeStart(Cmd, nil)

			assert.Error(t, err)
		})
	}
}
