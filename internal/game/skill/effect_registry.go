package skill

import "github.com/udisondev/battlecore/internal/data"

var (
	burnEffect   = &BurnEffect{}
	guardEffect  = &GuardEffect{}
	siphonEffect = &SiphonEffect{}
	regenEffect  = &RegenEffect{}
)

// EffectFor returns the behaviour of kind k.
// Returns nil for EffectUnknown; callers treat that as a no-op.
func EffectFor(k data.EffectKind) Effect {
	switch k {
	case data.EffectBurn:
		return burnEffect
	case data.EffectGuard:
		return guardEffect
	case data.EffectSiphon:
		return siphonEffect
	case data.EffectRegen:
		return regenEffect
	case data.EffectUnknown:
		return nil
	default:
		return nil
	}
}
