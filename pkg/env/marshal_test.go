package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalEnv(t *testing.T) {
	type sample struct {
		Token    string  `env:"APP_TOKEN,required,notEmpty"`
		ChatID   int64   `env:"APP_CHAT_ID"`
		Ratio    float64 `env:"APP_RATIO"`
		Verbose  bool    `env:"APP_VERBOSE"`
		Untagged string
		skipped  string `env:"APP_SKIPPED"`
	}

	tests := []struct {
		name string
		in   *sample
		want string
	}{
		{
			name: "all fields set",
			in: &sample{
				Token:   "abc:123",
				ChatID:  42,
				Ratio:   0.5,
				Verbose: true,
			},
			want: "APP_TOKEN=abc:123\nAPP_CHAT_ID=42\nAPP_RATIO=0.5\nAPP_VERBOSE=true\n",
		},
		{
			name: "zero values omitted",
			in: &sample{
				Token: "abc:123",
			},
			want: "APP_TOKEN=abc:123\n",
		},
		{
			name: "empty struct produces no content",
			in:   &sample{},
			want: "",
		},
		{
			name: "unexported and untagged fields ignored",
			in: &sample{
				ChatID:   7,
				Untagged: "ignored",
				skipped:  "ignored",
			},
			want: "APP_CHAT_ID=7\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MarshalEnv(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMarshalEnv_TagKeyOnly(t *testing.T) {
	type cfg struct {
		Path string `env:"APP_PATH"`
	}

	got, err := MarshalEnv(&cfg{Path: "/srv/app"})
	require.NoError(t, err)
	assert.Equal(t, "APP_PATH=/srv/app\n", got)
}
