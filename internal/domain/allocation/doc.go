// Package allocation distributes stories across team members.
//
// Allocate seeds a whole board in one greedy pass: largest stories first, each
// to the least-loaded member that still has room, earliest roster position on
// ties. TryReassign validates a single manual move against the current state.
// Both are pure functions over snapshots; callers own persistence and must
// serialise writes to a shared board.
package allocation
