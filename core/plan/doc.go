// Package plan distributes a season's rehearsal capacity across works.
// Time is handled in granularity tokens so every allocation lands on a
// whole-minute grid, and the requirement computation apportions the total
// snapped capacity exactly. The planner fills the first and last rehearsal
// to capacity with near-universal coverage, then spreads the remaining
// requirement across the middle rehearsals in three passes: specialist
// coverage, even spreading and flexible overfill.
package plan
