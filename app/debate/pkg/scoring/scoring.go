// Package scoring 把各专家的维度评分汇总成报告分数。
// 纯计算，结果与专家顺序无关。
package scoring

import (
	"math"

	"github.com/biopanel-ai/biopanel/app/debate/pkg/model"
)

type dimension struct {
	key    string
	weight float64
}

// 六个固定评估维度及权重
var dimensions = []dimension{
	{"clinicalValue", 0.25},
	{"regulatoryPath", 0.15},
	{"commercialPotential", 0.20},
	{"competitivePosition", 0.15},
	{"financialHealth", 0.15},
	{"ipStrength", 0.10},
}

// Aggregate 每个维度在给出该维度评分的专家之间取算术平均。
// 没有任何专家给分的维度为 0。
func Aggregate(agentScores []map[string]float64) model.DimensionScores {
	means := dimensionMeans(agentScores)
	round := func(key string) int {
		v, ok := means[key]
		if !ok {
			return 0
		}
		return int(math.Round(v))
	}
	return model.DimensionScores{
		ClinicalValue:       round("clinicalValue"),
		RegulatoryPath:      round("regulatoryPath"),
		CommercialPotential: round("commercialPotential"),
		CompetitivePosition: round("competitivePosition"),
		FinancialHealth:     round("financialHealth"),
		IPStrength:          round("ipStrength"),
	}
}

// Overall 加权综合分。只对有专家给分的维度计权并重新归一化，
// 全部缺失时返回 0。
// 先取整再加权，保证与 Aggregate 对外给出的维度分一致。
func Overall(agentScores []map[string]float64) int {
	means := dimensionMeans(agentScores)

	var weightedSum, totalWeight float64
	for _, d := range dimensions {
		v, ok := means[d.key]
		if !ok {
			continue
		}
		weightedSum += math.Round(v) * d.weight
		totalWeight += d.weight
	}
	if totalWeight == 0 {
		return 0
	}
	return int(math.Round(weightedSum / totalWeight))
}

// dimensionMeans 仅包含至少有一位专家给分的维度
func dimensionMeans(agentScores []map[string]float64) map[string]float64 {
	means := make(map[string]float64, len(dimensions))
	for _, d := range dimensions {
		var sum float64
		var n int
		for _, scores := range agentScores {
			if v, ok := scores[d.key]; ok {
				sum += v
				n++
			}
		}
		if n > 0 {
			means[d.key] = sum / float64(n)
		}
	}
	return means
}
