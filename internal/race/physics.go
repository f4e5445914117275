package race

import (
	"github.com/vovakirdan/shell-derby/internal/terrain"
)

// accelRate controls how quickly velocity approaches the target speed,
// scaled by the entrant's derived acceleration stat.
const accelRate = 0.5

// engine is the physics integrator. It owns every EntrantState and
// advances them one tick at a time; the arbiter reads the results and
// commands status changes that the engine obeys on the next tick.
type engine struct {
	cfg     *Config
	course  *terrain.Course
	catalog *terrain.Catalog
	racers  []*racer // ascending id order, fixed for the race
}

func newEngine(cfg *Config, course *terrain.Course, catalog *terrain.Catalog, racers []*racer) *engine {
	return &engine{cfg: cfg, course: course, catalog: catalog, racers: racers}
}

// advance integrates every active entrant over one tick of duration dt.
// The tick is divided into cfg.SubSteps equal sub-intervals so that an
// entrant cannot overshoot a terrain boundary by a whole tick's worth of
// distance and energy decay stays stable regardless of tick rate.
func (e *engine) advance(dt float64) {
	n := e.cfg.SubSteps
	sdt := dt / float64(n)

	for _, r := range e.racers {
		st := r.state
		if st.Status.Terminal() {
			continue
		}

		if st.Resting {
			e.rest(r, dt)
			continue
		}

		for i := 0; i < n; i++ {
			e.integrate(r, sdt)
		}
	}
}

// rest recovers energy without advancing position. The terrain interaction
// calculus does not apply during rest; the only terrain input is the
// type's recovery penalty, the extra cost of recovering on hostile ground.
// Recovery scales with the genome's energy efficiency, same as drain.
func (e *engine) rest(r *racer, dt float64) {
	st := r.state
	seg := e.course.At(st.Position)
	penalty := terrain.BaseProperties(seg.Type).RecoveryPenalty

	st.Velocity = 0
	st.Energy += e.cfg.RecoveryRate * r.stats.EnergyEfficiency * (1 - penalty) * dt
	if st.Energy > st.MaxEnergy {
		st.Energy = st.MaxEnergy
	}
}

// integrate advances one sub-interval: terrain lookup by position,
// modifier application, velocity smoothing toward the effective speed,
// then position/energy update with clamping. Total function: no
// sub-interval can fail.
func (e *engine) integrate(r *racer, sdt float64) {
	st := r.state

	seg := e.course.At(st.Position)
	mods := e.catalog.ModifiersForMask(seg.Type, r.mask)

	speedMod := mods.Speed
	energyMod := mods.Energy
	if seg.SpeedModifier > 0 || seg.EnergyDrain > 0 {
		// Segment overrides replace the base factor baked into the
		// catalog result.
		base := terrain.BaseProperties(seg.Type)
		speedMod = speedMod / base.SpeedModifier * seg.EffectiveSpeedModifier()
		energyMod = energyMod / base.EnergyDrain * seg.EffectiveEnergyDrain()
	}

	target := e.cfg.BaseSpeed * speedMod * r.stats.SpeedRatio
	if target > r.stats.MaxSpeed {
		target = r.stats.MaxSpeed
	}

	st.Velocity += (target - st.Velocity) * accelRate * r.stats.Acceleration * sdt
	if st.Velocity < 0 {
		st.Velocity = 0
	}
	if st.Velocity > r.stats.MaxSpeed {
		st.Velocity = r.stats.MaxSpeed
	}

	st.Position += st.Velocity * sdt
	if st.Position > e.course.Length() {
		st.Position = e.course.Length()
	}

	drain := e.cfg.EnergyDrainRate * energyMod / r.stats.EnergyEfficiency * sdt
	st.Energy -= drain
	if st.Energy < 0 {
		st.Energy = 0
	}

	if st.Velocity > st.TopSpeed {
		st.TopSpeed = st.Velocity
	}
	st.RaceTime += sdt
	if st.RaceTime > 0 {
		st.AverageSpeed = st.Position / st.RaceTime
	}
}

// states returns the engine's entrant states in processing order. Shared
// with the arbiter only; external consumers get copies via snapshots.
func (e *engine) states() []*EntrantState {
	out := make([]*EntrantState, len(e.racers))
	for i, r := range e.racers {
		out[i] = r.state
	}
	return out
}
