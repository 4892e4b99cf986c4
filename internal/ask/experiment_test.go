package ask

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssignVariant_Deterministic(t *testing.T) {
	first := AssignVariant("session-1", ModelExperiment)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, AssignVariant("session-1", ModelExperiment))
	}
}

func TestAssignVariant_BothArmsReachable(t *testing.T) {
	arms := map[string]bool{}
	for i := 0; i < 50; i++ {
		arms[AssignVariant(fmt.Sprintf("session-%d", i), ModelExperiment)] = true
	}
	assert.True(t, arms[VariantControl])
	assert.True(t, arms[VariantTreatment])
}
