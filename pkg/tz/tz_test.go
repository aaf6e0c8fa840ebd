package tz

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	req := require.New(t)
	req.Equal(Paris, Load(""))
	req.Equal(Paris, Load("Mars/Olympus_Mons"))
	req.Equal("America/New_York", Load("America/New_York").String())
}
