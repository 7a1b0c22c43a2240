package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nbfilms/studio-api/internal/platform/apperr"
)

func TestNewRating_Bounds(t *testing.T) {
	for _, stars := range []int{1, 3, 5} {
		r, err := NewRating("bk-1", "Wedding Premium", stars)
		require.NoError(t, err)
		assert.Equal(t, stars, r.Stars)
	}

	for _, stars := range []int{0, 6, -1} {
		_, err := NewRating("bk-1", "Wedding Premium", stars)
		require.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	}
}

func TestNewRating_RequiresPackage(t *testing.T) {
	_, err := NewRating("bk-1", "", 4)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestNewRating_BookingIDOptional(t *testing.T) {
	// The feedback link carries only the package; the booking reference is a
	// loose string and may be absent.
	r, err := NewRating("", "Portrait", 5)
	require.NoError(t, err)
	assert.Equal(t, "", r.BookingID)
}

func TestSummarize(t *testing.T) {
	mk := func(stars int) *Rating {
		r, err := NewRating("", "Wedding", stars)
		require.NoError(t, err)
		return r
	}

	summary := Summarize([]*Rating{mk(5), mk(4), mk(4)})
	assert.Equal(t, 4.3, summary.Average)
	assert.Equal(t, int64(3), summary.Count)

	empty := Summarize(nil)
	assert.Equal(t, 0.0, empty.Average)
	assert.Equal(t, int64(0), empty.Count)
}

func TestNewServicePackage_ThumbnailCap(t *testing.T) {
	thumbs := []string{"a", "b", "c", "d"}
	_, err := NewServicePackage("Wedding", "desc", "main.jpg", thumbs, nil)
	require.NoError(t, err)

	_, err = NewServicePackage("Wedding", "desc", "main.jpg", append(thumbs, "e"), nil)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}
