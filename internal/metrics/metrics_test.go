package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	assert.NoError(t, Register(reg))

	// registering twice on the same registry fails
	assert.Error(t, Register(reg))
}

func TestDomainEvents(t *testing.T) {
	before := testutil.ToFloat64(DomainEvents.WithLabelValues("post_created", "published"))
	DomainEvents.WithLabelValues("post_created", "published").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(DomainEvents.WithLabelValues("post_created", "published")))
}
