package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSanitizeBaseName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Holiday Photo", "holiday-photo"},
		{"my_file-1", "my_file-1"},
		{"数据", ""},
		{"", ""},
		{"---", ""},
	}
	for _, c := range cases {
		got := sanitizeBaseName(c.in)
		if c.want == "" {
			require.Equal(t, "file", got, c.in)
			continue
		}
		require.Equal(t, c.want, got, c.in)
	}

	long := strings.Repeat("a", 100)
	require.Len(t, sanitizeBaseName(long), maxBaseNameLen)
}

func TestAvatarKeyShape(t *testing.T) {
	key := avatarKey("u-1", "My Face.PNG")
	require.True(t, strings.HasPrefix(key, "avatar/u-1-my-face-"))
	require.True(t, strings.HasSuffix(key, ".png"))
	require.NotEqual(t, key, avatarKey("u-1", "My Face.PNG"))
}

func TestPublicationKeyShape(t *testing.T) {
	key := publicationKey("clip.MP4")
	require.True(t, strings.HasPrefix(key, "publication/"))
	require.True(t, strings.HasSuffix(key, ".mp4"))
	require.NotEqual(t, key, publicationKey("clip.MP4"))

	bare := publicationKey("noext")
	require.False(t, strings.Contains(strings.TrimPrefix(bare, "publication/"), "."))
}

func TestKindFromContentType(t *testing.T) {
	require.Equal(t, "image", kindFromContentType("image/png"))
	require.Equal(t, "video", kindFromContentType("Video/mp4"))
	require.Equal(t, "file", kindFromContentType(""))
	require.Equal(t, "application", kindFromContentType("application/octet-stream"))
}
