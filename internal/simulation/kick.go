package simulation

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"

	"github.com/brenero/3d-free-kick-game/internal/config"
	"github.com/brenero/3d-free-kick-game/internal/shared/types"
)

// Aim is the player's input at the moment of the kick.
type Aim struct {
	Yaw    float64 // radians, 0 faces the goal, positive turns toward -X
	Power  float64 // power bar, 0..100
	Height float64 // launch height factor
	Curve  float64 // -1..1
}

// KickFromAim turns the power bar reading into launch parameters. The bar is
// scaled by the max power multiplier, so a full bar kicks harder than the
// base speed and also launches higher.
func KickFromAim(cfg config.Kick, aim Aim) (types.KickParams, error) {
	if aim.Power < cfg.MinPower {
		return types.KickParams{}, errors.Errorf("kick power %.1f is below the minimum of %.1f", aim.Power, cfg.MinPower)
	}
	height := mgl64.Clamp(aim.Height, cfg.MinHeight, cfg.MaxHeight)
	power := aim.Power * cfg.MaxPowerMultiplier / 100

	return types.KickParams{
		Spin:      mgl64.Clamp(aim.Curve, -1, 1),
		Direction: mgl64.Vec3{-math.Sin(aim.Yaw), 0, -math.Cos(aim.Yaw)},
		Speed:     cfg.BaseSpeed * power,
		Lift:      height * power,
	}, nil
}

func clampKick(k types.KickParams) (types.KickParams, error) {
	if k.Speed < 0 || !finite(k.Speed) {
		return k, errors.Errorf("invalid kick speed %v", k.Speed)
	}
	if !finite(k.Lift) || !finite(k.Spin) {
		return k, errors.Errorf("invalid kick lift %v or spin %v", k.Lift, k.Spin)
	}
	for _, v := range k.Direction {
		if !finite(v) {
			return k, errors.Errorf("invalid kick direction %v", k.Direction)
		}
	}
	dir := k.Direction
	dir[types.AxisY] = 0
	if dir.Len() == 0 {
		return k, errors.New("kick direction has no horizontal component")
	}
	k.Direction = dir.Normalize()
	k.Spin = mgl64.Clamp(k.Spin, -1, 1)
	return k, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
