package keys

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeys_Builders(t *testing.T) {
	q := "crawl"
	assert.Equal(t, "spiderkit:{crawl}:pending", Pending(q))
	assert.Equal(t, "spiderkit:{crawl}:seen", Seen(q))
}
