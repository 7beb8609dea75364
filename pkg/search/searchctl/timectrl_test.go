package searchctl_test

import (
	"context"
	"testing"
	"time"

	"github.com/corvidchess/corvid/pkg/board"
	"github.com/corvidchess/corvid/pkg/search"
	"github.com/corvidchess/corvid/pkg/search/searchctl"
	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/stretchr/testify/assert"
)

type fakeHandle struct{}

func (fakeHandle) Halt() search.PV { return search.PV{} }

func TestTimeControlLimitsSplitsRemainderByMovesToGo(t *testing.T) {
	tc := searchctl.TimeControl{White: 60 * time.Second, Black: 60 * time.Second, Moves: 19}
	soft, hard := tc.Limits(board.White)

	assert.Equal(t, 60*time.Second/40, soft)
	assert.Equal(t, 3*soft, hard)
}

func TestTimeControlLimitsDefaultsMovesToGoWhenUnset(t *testing.T) {
	tc := searchctl.TimeControl{White: 80 * time.Second, Black: 80 * time.Second}
	soft, _ := tc.Limits(board.White)

	assert.Equal(t, 80*time.Second/80, soft)
}

func TestTimeControlLimitsAreColorSpecific(t *testing.T) {
	tc := searchctl.TimeControl{White: 60 * time.Second, Black: 30 * time.Second, Moves: 19}
	white, _ := tc.Limits(board.White)
	black, _ := tc.Limits(board.Black)

	assert.Equal(t, 2*black, white)
}

func TestTimeControlStringOmitsMovesWhenUnset(t *testing.T) {
	tc := searchctl.TimeControl{White: time.Second, Black: time.Second}
	assert.NotContains(t, tc.String(), "moves")
}

func TestEnforceTimeControlReturnsFalseWhenUnset(t *testing.T) {
	soft, ok := searchctl.EnforceTimeControl(context.Background(), fakeHandle{}, lang.Optional[searchctl.TimeControl]{}, board.White)
	assert.False(t, ok)
	assert.Zero(t, soft)
}

func TestEnforceTimeControlReturnsSoftLimitWhenSet(t *testing.T) {
	tc := searchctl.TimeControl{White: 60 * time.Second, Black: 60 * time.Second, Moves: 19}
	soft, ok := searchctl.EnforceTimeControl(context.Background(), fakeHandle{}, lang.Some(tc), board.White)
	assert.True(t, ok)
	assert.Equal(t, 60*time.Second/40, soft)
}
