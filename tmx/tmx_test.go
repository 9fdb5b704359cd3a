package tmx

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const sample = `<?xml version="1.0" encoding="UTF-8"?>
<map version="1.2" width="2" height="2" tilewidth="16" tileheight="16">
 <tileset firstgid="1" name="tiles" tilewidth="16" tileheight="16">
  <tile id="1">
   <properties>
    <property name="solid" value="true"/>
    <property name="hazard" value="true"/>
   </properties>
  </tile>
  <tile id="2">
   <properties>
    <property name="ladder" value="false"/>
   </properties>
  </tile>
 </tileset>
 <layer name="main" width="2" height="2">
  <data encoding="csv">
1,2,
3,0
  </data>
 </layer>
</map>
`

func TestParse(t *testing.T) {
	m, err := Parse(strings.NewReader(sample), "main")
	assert.NoError(t, err)

	assert.Equal(t, 2, m.Width)
	assert.Equal(t, 2, m.Height)
	assert.Equal(t, 1, m.FirstGID)
	assert.Equal(t, []byte{0, 1, 2, 0}, m.Tiles)

	// Only tile id 1 has truthy collision properties.
	assert.Equal(t, []byte{0, Solid | Hazard, 0, 0}, m.Collision)
}

func TestParseFirstLayerByDefault(t *testing.T) {
	m, err := Parse(strings.NewReader(sample), "")
	assert.NoError(t, err)
	assert.Equal(t, []byte{0, 1, 2, 0}, m.Tiles)
}

func TestParseLayerNotFound(t *testing.T) {
	_, err := Parse(strings.NewReader(sample), "missing")
	assert.EqualError(t, err, `layer "missing" not found`)
}

func TestParseFirstGID(t *testing.T) {
	doc := `<map width="2" height="1" tilewidth="16" tileheight="16">
 <tileset firstgid="17"/>
 <layer name="main" width="2" height="1">
  <data encoding="csv">18,0</data>
 </layer>
</map>`

	m, err := Parse(strings.NewReader(doc), "")
	assert.NoError(t, err)
	assert.Equal(t, 17, m.FirstGID)
	// Stored 18 normalizes to 1; stored 0 stays empty.
	assert.Equal(t, []byte{1, 0}, m.Tiles)
}

func TestParseClampsLargeIDs(t *testing.T) {
	doc := `<map width="2" height="1" tilewidth="16" tileheight="16">
 <layer name="main" width="2" height="1">
  <data encoding="csv">400,1</data>
 </layer>
</map>`

	m, err := Parse(strings.NewReader(doc), "")
	assert.NoError(t, err)
	assert.Equal(t, []byte{255, 0}, m.Tiles)
}

func TestParseTileSize(t *testing.T) {
	doc := `<map width="1" height="1" tilewidth="8" tileheight="8">
 <layer name="main" width="1" height="1">
  <data encoding="csv">0</data>
 </layer>
</map>`

	_, err := Parse(strings.NewReader(doc), "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "tile size")
}

func TestParseEncoding(t *testing.T) {
	doc := `<map width="1" height="1" tilewidth="16" tileheight="16">
 <layer name="main" width="1" height="1">
  <data encoding="base64">AAAA</data>
 </layer>
</map>`

	_, err := Parse(strings.NewReader(doc), "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "CSV")
}

func TestParseCellCount(t *testing.T) {
	doc := `<map width="2" height="2" tilewidth="16" tileheight="16">
 <layer name="main" width="2" height="2">
  <data encoding="csv">1,2,3</data>
 </layer>
</map>`

	_, err := Parse(strings.NewReader(doc), "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "expected 4 cells")
}

func TestParseBadCell(t *testing.T) {
	doc := `<map width="1" height="1" tilewidth="16" tileheight="16">
 <layer name="main" width="1" height="1">
  <data encoding="csv">banana</data>
 </layer>
</map>`

	_, err := Parse(strings.NewReader(doc), "")
	assert.Error(t, err)
}

func TestPropertyFlag(t *testing.T) {
	tests := []struct {
		name string
		flag byte
	}{
		{"solid", Solid},
		{"platform", Platform},
		{"slope_l", SlopeL},
		{"slope_r", SlopeR},
		{"hazard", Hazard},
		{"trigger", Trigger},
		{"ladder", Ladder},
		{"SOLID", Solid},
	}

	for _, tt := range tests {
		f, ok := PropertyFlag(tt.name)
		assert.True(t, ok, tt.name)
		assert.Equal(t, tt.flag, f, tt.name)
	}

	_, ok := PropertyFlag("bouncy")
	assert.False(t, ok)
}
