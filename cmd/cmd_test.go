package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/titooo7/enhancedchannelmanager-sub006/internal/ffmpeg"
)

func run(t *testing.T, cmd *cobra.Command, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const x264YAML = `
input:
  path: "{streamUrl}"
output:
  path: pipe:1
  format: ts
videoCodec:
  codec: libx264
  preset: veryfast
  crf: 23
audioCodec:
  codec: aac
  bitrate: 128k
`

const x264Command = "ffmpeg -i {streamUrl} -c:v libx264 -preset veryfast -crf 23 -c:a aac -b:a 128k -f mpegts pipe:1"

func TestReadConfigFormats(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"config.yaml", x264YAML},
		{"config.json", `{"input":{"path":"{streamUrl}"},"output":{"path":"pipe:1","format":"ts"},
			"videoCodec":{"codec":"libx264","preset":"veryfast","crf":23},"audioCodec":{"codec":"aac","bitrate":"128k"}}`},
		{"config.toml", `
[input]
path = "{streamUrl}"

[output]
path = "pipe:1"
format = "ts"

[video_codec]
codec = "libx264"
preset = "veryfast"
crf = 23

[audio_codec]
codec = "aac"
bitrate = "128k"
`},
	}

	var configs []ffmpeg.Config
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ReadConfig(strings.NewReader(tt.content), tt.name)
			require.NoError(t, err)
			assert.Equal(t, x264Command, ffmpeg.Generate(cfg).Command)
			configs = append(configs, cfg)
		})
	}

	for i := 1; i < len(configs); i++ {
		if diff := cmp.Diff(configs[0], configs[i]); diff != "" {
			t.Errorf("%s decodes differently (-yaml +other):\n%s", tests[i].name, diff)
		}
	}
}

func TestReadConfigInvalid(t *testing.T) {
	_, err := ReadConfig(strings.NewReader("{"), "broken.json")
	assert.ErrorContains(t, err, "broken.json")
}

func TestGenerateCmd(t *testing.T) {
	path := writeFile(t, "x264.yaml", x264YAML)

	out, errOut, err := run(t, CreateGenerateCmd(), "", path)
	require.NoError(t, err)
	assert.Equal(t, x264Command+"\n", out)
	assert.Empty(t, errOut)
}

func TestGenerateCmdAnnotateAndWarnings(t *testing.T) {
	stdin := `{"input":{"path":"in"},"output":{"path":"out","format":"ts"},"videoCodec":{"codec":"libvpx-vp9"}}`

	out, errOut, err := run(t, CreateGenerateCmd(), stdin, "--annotate")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Greater(t, len(lines), 2)
	assert.Equal(t, "ffmpeg -i in -c:v libvpx-vp9 -f mpegts out", lines[0])
	assert.Contains(t, out, "-c:v libvpx-vp9")
	assert.Contains(t, errOut, "warning [container-codec]")
}

func TestGenerateCmdJSON(t *testing.T) {
	stdin := `{"input":{"path":"in"},"output":{"path":"out"}}`

	out, _, err := run(t, CreateGenerateCmd(), stdin, "--json")
	require.NoError(t, err)

	var res ffmpeg.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "ffmpeg -i in out", res.Command)
	assert.Equal(t, []string{"ffmpeg", "-i", "in", "out"}, res.Args)
}

func TestPresetsCmdImportListExport(t *testing.T) {
	store := filepath.Join(t.TempDir(), "presets.toml")
	doc := writeFile(t, "preset.yaml", "name: Channel x264\nkind: profile\nconfig:\n"+indent(x264YAML))

	out, _, err := run(t, CreatePresetsCmd(), "", "import", doc, "-f", store)
	require.NoError(t, err)
	assert.Contains(t, out, `Imported profile "Channel x264" as `)
	id := strings.TrimSpace(out[strings.LastIndex(out, " "):])

	out, _, err = run(t, CreatePresetsCmd(), "", "list", "-f", store)
	require.NoError(t, err)
	assert.Contains(t, out, "system-passthrough")
	assert.Contains(t, out, id)

	out, _, err = run(t, CreatePresetsCmd(), "", "show", id, "-f", store)
	require.NoError(t, err)
	assert.Equal(t, x264Command+"\n", out)

	out, _, err = run(t, CreatePresetsCmd(), "", "export", id, "-f", store)
	require.NoError(t, err)
	assert.Contains(t, out, "name: Channel x264")
	assert.NotContains(t, out, id)

	// Importing the same document again clashes on the name
	_, _, err = run(t, CreatePresetsCmd(), "", "import", doc, "-f", store)
	assert.Error(t, err)
}

func TestPresetsCmdUnknownPreset(t *testing.T) {
	store := filepath.Join(t.TempDir(), "presets.toml")
	_, _, err := run(t, CreatePresetsCmd(), "", "show", "nope", "-f", store)
	assert.ErrorContains(t, err, "not found")
}

func indent(s string) string {
	lines := strings.Split(strings.Trim(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = "  " + l
	}
	return strings.Join(lines, "\n") + "\n"
}
