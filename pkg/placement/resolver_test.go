package placement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/fleet-policy/pkg/errors"
)

func TestResolveSelectorBased(t *testing.T) {
	selectors := map[string]string{"environment": "dev", "tier": "apps"}

	rule, err := Resolve(selectors, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, RuleKindSelector, rule.Kind)
	assert.Equal(t, selectors, rule.MatchLabels)
	assert.Empty(t, rule.ClusterSets)
	assert.Empty(t, rule.MatchExpressions)
}

func TestResolveSelectorBasedIgnoresPredicates(t *testing.T) {
	rule, err := Resolve(
		map[string]string{"environment": "dev"},
		nil,
		[]Predicate{NewPredicate(Expression{Key: "ignored", Operator: OperatorIn, Values: []string{"x"}})},
	)
	require.NoError(t, err)
	assert.Empty(t, rule.MatchExpressions)
}

func TestResolveClusterSetBased(t *testing.T) {
	rule, err := Resolve(nil, []string{"hub-eu", "hub-us", "hub-apac"}, nil)
	require.NoError(t, err)

	assert.Equal(t, RuleKindClusterSet, rule.Kind)
	assert.Equal(t, []string{"hub-eu", "hub-us", "hub-apac"}, rule.ClusterSets)
	assert.Empty(t, rule.MatchExpressions)
	assert.Nil(t, rule.MatchLabels)
}

func TestResolveClusterSetBasedWithPredicates(t *testing.T) {
	preds := []Predicate{
		NewPredicate(Expression{Key: "environment", Values: []string{"dev"}}),
		NewPredicate(
			Expression{Key: "region", Operator: OperatorIn, Values: []string{"emea"}},
			Expression{Key: "gpu", Operator: OperatorExists},
		),
	}

	rule, err := Resolve(nil, []string{"hub-eu"}, preds)
	require.NoError(t, err)

	require.Len(t, rule.MatchExpressions, 3)
	// Expansion order follows input order; omitted operators default to In.
	assert.Equal(t, Expression{Key: "environment", Operator: OperatorIn, Values: []string{"dev"}}, rule.MatchExpressions[0])
	assert.Equal(t, "region", rule.MatchExpressions[1].Key)
	assert.Equal(t, OperatorExists, rule.MatchExpressions[2].Operator)
}

func TestResolveTargetingUnion(t *testing.T) {
	t.Run("both variants", func(t *testing.T) {
		_, err := Resolve(map[string]string{"a": "b"}, []string{"set"}, nil)
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrCodeConfig))
	})

	t.Run("neither variant", func(t *testing.T) {
		_, err := Resolve(nil, nil, nil)
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrCodeConfig))
	})
}
