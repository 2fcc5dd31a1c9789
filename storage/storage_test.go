package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatBookingID(t *testing.T) {
	cases := []struct {
		seq  int64
		want string
	}{
		{1, "MSC000001"},
		{42, "MSC000042"},
		{999999, "MSC999999"},
		{1000000, "MSC1000000"}, // width grows rather than wrapping
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatBookingID(tc.seq))
	}
}
