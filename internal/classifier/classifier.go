// Package classifier evaluates a pre-fitted gradient-boosted survival model
// exported as a JSON artifact: label encoders, feature scaler, and the tree
// ensemble. No training happens here.
package classifier

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
)

// Input carries raw feature values before encoding and scaling.
type Input struct {
	Numeric     map[string]float64
	Categorical map[string]string
}

type treeNodes struct {
	Feature   []int     `json:"feature"`
	Threshold []float64 `json:"threshold"`
	Left      []int     `json:"left"`
	Right     []int     `json:"right"`
	Value     []float64 `json:"value"`
}

type artifact struct {
	Version      string                        `json:"version"`
	Features     []string                      `json:"features"`
	Encoders     map[string]map[string]float64 `json:"encoders"`
	ScalerMean   []float64                     `json:"scaler_mean"`
	ScalerScale  []float64                     `json:"scaler_scale"`
	InitScore    float64                       `json:"init_score"`
	LearningRate float64                       `json:"learning_rate"`
	Trees        []treeNodes                   `json:"trees"`
}

type Model struct {
	version      string
	features     []string
	encoders     map[string]map[string]float64
	scalerMean   []float64
	scalerScale  []float64
	initScore    float64
	learningRate float64
	trees        []treeNodes
}

// Load reads and validates the model artifact. Any failure leaves the
// classifier permanently unavailable; callers run playbook-only.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model artifact: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Model, error) {
	var a artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("unmarshal model artifact: %w", err)
	}

	n := len(a.Features)
	if n == 0 {
		return nil, fmt.Errorf("model artifact has no features")
	}
	if len(a.ScalerMean) != n || len(a.ScalerScale) != n {
		return nil, fmt.Errorf("scaler dimensions %d/%d do not match %d features",
			len(a.ScalerMean), len(a.ScalerScale), n)
	}
	if len(a.Trees) == 0 {
		return nil, fmt.Errorf("model artifact has no trees")
	}
	for i, t := range a.Trees {
		nodes := len(t.Feature)
		if len(t.Threshold) != nodes || len(t.Left) != nodes || len(t.Right) != nodes || len(t.Value) != nodes {
			return nil, fmt.Errorf("tree %d has inconsistent node arrays", i)
		}
		for j := 0; j < nodes; j++ {
			if t.Left[j] >= nodes || t.Right[j] >= nodes {
				return nil, fmt.Errorf("tree %d node %d has out-of-range child", i, j)
			}
			if (t.Left[j] < 0) != (t.Right[j] < 0) {
				return nil, fmt.Errorf("tree %d node %d is half leaf", i, j)
			}
			// Children must point strictly forward so traversal terminates.
			if t.Left[j] >= 0 && (t.Left[j] <= j || t.Right[j] <= j) {
				return nil, fmt.Errorf("tree %d node %d has non-forward child", i, j)
			}
			if t.Feature[j] >= n {
				return nil, fmt.Errorf("tree %d node %d references feature %d of %d", i, j, t.Feature[j], n)
			}
		}
	}

	return &Model{
		version:      a.Version,
		features:     a.Features,
		encoders:     a.Encoders,
		scalerMean:   a.ScalerMean,
		scalerScale:  a.ScalerScale,
		initScore:    a.InitScore,
		learningRate: a.LearningRate,
		trees:        a.Trees,
	}, nil
}

func (m *Model) Version() string {
	return m.version
}

// Predict returns the survival probability in [0,1]. Unknown categorical
// values encode to 0 rather than failing.
func (m *Model) Predict(in Input) (float64, error) {
	vec := make([]float64, len(m.features))
	for i, name := range m.features {
		if enc, ok := m.encoders[name]; ok {
			vec[i] = enc[in.Categorical[name]]
			continue
		}
		v, ok := in.Numeric[name]
		if !ok {
			return 0, fmt.Errorf("missing feature %q", name)
		}
		vec[i] = v
	}

	for i := range vec {
		scale := m.scalerScale[i]
		if scale == 0 {
			scale = 1
		}
		vec[i] = (vec[i] - m.scalerMean[i]) / scale
	}

	score := m.initScore
	for _, t := range m.trees {
		score += m.learningRate * evalTree(t, vec)
	}

	return sigmoid(score), nil
}

func evalTree(t treeNodes, vec []float64) float64 {
	idx := 0
	for t.Left[idx] >= 0 {
		if vec[t.Feature[idx]] <= t.Threshold[idx] {
			idx = t.Left[idx]
		} else {
			idx = t.Right[idx]
		}
	}
	return t.Value[idx]
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
