// Package rewards holds the fixed incentive policy: point and carbon rates,
// badge tiers, and the KES valuation of carbon credits.
package rewards

import "hash/fnv"

const (
	PointsPerTree = 2
	CarbonPerTree = 0.025 // tonnes CO2 per verified tree
	ReportPoints  = 1
	ReportCarbon  = 0.001
	KESPerTonne   = 300.0
)

const ParticipantBadge = "15 Billion Trees Initiative Participant"

// FundProjects are the restoration projects a user can direct carbon value to.
var FundProjects = []string{
	"Mau Forest Restoration",
	"Lake Victoria Cleanup",
	"Maasai Mara Conservation",
}

// BadgeForTrees maps a verified-tree total to its tier.
func BadgeForTrees(trees int64) string {
	switch {
	case trees >= 50:
		return "Forest Hero"
	case trees >= 20:
		return "Tree Champion"
	case trees >= 10:
		return "Green Warrior"
	case trees >= 5:
		return "Eco Defender"
	default:
		return "Nature Friend"
	}
}

// Badges returns the full badge set for a user with at least one verified
// planting. The participant badge is earned on the first verification.
func Badges(treesVerified int64, hasVerifiedPlanting bool) []string {
	badges := []string{BadgeForTrees(treesVerified)}
	if hasVerifiedPlanting {
		badges = append(badges, ParticipantBadge)
	}
	return badges
}

// ProjectFor picks a stable fund project for a user.
func ProjectFor(userID int64) string {
	h := fnv.New32a()
	var buf [8]byte
	for i := 0; i < 8; i++ {
		buf[i] = byte(userID >> (8 * i))
	}
	h.Write(buf[:])
	return FundProjects[int(h.Sum32())%len(FundProjects)]
}

// CarbonValueKES converts tonnes of CO2 to Kenyan shillings.
func CarbonValueKES(tonnes float64) float64 {
	return tonnes * KESPerTonne
}
