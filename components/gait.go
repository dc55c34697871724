package components

// Gait holds the per-creature step tuning, variant-scaled and jittered at
// spawn. DurationTicks is a float so variant multipliers compose cleanly;
// the per-tick progress increment is 1/DurationTicks.
type Gait struct {
	TriggerDistance float32 // foot-to-ideal displacement that starts a step
	DurationTicks   float32 // swing length in ticks
	Height          float32 // arc peak height
	Lead            float32 // velocity lookahead factor for the ideal foot
}
