package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Request
		want Request
	}{
		{"defaults", Request{}, Request{Page: 1, Limit: 10}},
		{"negative values", Request{Page: -3, Limit: -1}, Request{Page: 1, Limit: 10}},
		{"limit capped", Request{Page: 2, Limit: 500}, Request{Page: 2, Limit: 100}},
		{"kept as is", Request{Page: 4, Limit: 25}, Request{Page: 4, Limit: 25}},
		{"disabled flag survives", Request{Disabled: true}, Request{Page: 1, Limit: 10, Disabled: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize())
		})
	}
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Request{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 40, Request{Page: 3, Limit: 20}.Offset())
}

func TestNewMeta(t *testing.T) {
	meta := NewMeta(Request{Page: 2, Limit: 10}, 35)
	assert.Equal(t, &Meta{Total: 35, Page: 2, Limit: 10, Pages: 4, HasNext: true, HasPrev: true}, meta)

	last := NewMeta(Request{Page: 4, Limit: 10}, 35)
	assert.False(t, last.HasNext)
	assert.True(t, last.HasPrev)

	empty := NewMeta(Request{Page: 1, Limit: 10}, 0)
	assert.Equal(t, 0, empty.Pages)
	assert.False(t, empty.HasNext)
	assert.False(t, empty.HasPrev)
}
