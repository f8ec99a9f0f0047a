package names

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizePlayerNameCollapsesWhitespace(t *testing.T) {
	assert.Equal(t, "Foo Bar", SanitizePlayerName("  Foo   Bar  "))
}

func TestSanitizePlayerNameFallsBackWhenEmpty(t *testing.T) {
	assert.Equal(t, "Player", SanitizePlayerName("   "))
	assert.Equal(t, "Player", SanitizePlayerName(""))
}

func TestSanitizePlayerNameTruncatesToTwentyRunes(t *testing.T) {
	long := strings.Repeat("a", 40)
	got := SanitizePlayerName(long)
	assert.Len(t, []rune(got), 20)
}

func TestSanitizeRoomNameStripsDisallowedCharacters(t *testing.T) {
	assert.Equal(t, "room-42_testscript", SanitizeRoomName("room-42_test!! <script>"))
}

func TestSanitizeRoomNameCapsAtSixtyFourChars(t *testing.T) {
	long := strings.Repeat("a", 100)
	assert.Len(t, SanitizeRoomName(long), 64)
}
