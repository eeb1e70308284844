package logging

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNewParsesLevel(t *testing.T) {
	var buf bytes.Buffer
	lg := New("debug", &buf)
	assert.Equal(t, logrus.DebugLevel, lg.GetLevel())

	System(lg, "actors").WithField("entity", 3).Debug("transition")
	assert.Contains(t, buf.String(), "system=actors")
	assert.Contains(t, buf.String(), "entity=3")
}

func TestNewUnknownLevelIsInfo(t *testing.T) {
	lg := New("chatty", nil)
	assert.Equal(t, logrus.InfoLevel, lg.GetLevel())
}
