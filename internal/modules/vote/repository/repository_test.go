package repository

import (
	"testing"

	"github.com/fitvibes/fitvibes-server/internal/entity"
	"github.com/stretchr/testify/require"
)

func TestFinalStatus(t *testing.T) {
	tests := []struct {
		name       string
		validVotes int
		totalVotes int
		want       string
	}{
		{"unanimous valid", 2, 2, entity.ActivityStatusValid},
		{"split resolves to invalid", 1, 2, entity.ActivityStatusInvalid},
		{"unanimous invalid", 0, 2, entity.ActivityStatusInvalid},
		{"single valid vote", 1, 1, entity.ActivityStatusValid},
		{"single invalid vote", 0, 1, entity.ActivityStatusInvalid},
		{"majority of three", 2, 3, entity.ActivityStatusValid},
		{"minority of three", 1, 3, entity.ActivityStatusInvalid},
		{"even split of four", 2, 4, entity.ActivityStatusInvalid},
		{"three of four", 3, 4, entity.ActivityStatusValid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, FinalStatus(tt.validVotes, tt.totalVotes))
		})
	}
}
