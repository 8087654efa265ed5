// Package replacement simulates demand paging over a reference trace.
//
// A run walks the trace once against a fixed number of frames and decides,
// for every reference, whether the page is resident (a hit) or has to be
// brought in (a miss). Three victim-selection policies are provided:
//
//   - FIFO evicts pages in the order they were loaded. Hits never change the
//     eviction order.
//
//   - LRU keeps an age per frame. Every reference ages all frames by one and
//     resets the age of the frame it touches. The oldest frame is evicted.
//
//   - OPT (Belady) looks ahead in the trace and evicts the page whose next
//     reference is farthest away. Pages that are never referenced again are
//     preferred; among those the lowest frame wins.
//
// Accounting:
//
//   - Warm-up lasts until the frame table has been fully allocated once.
//     Warm-up misses fill empty frames and are never counted.
//
//   - A reference is counted only if the table was already filled when the
//     reference started. The reference whose miss completes the fill is
//     itself not counted.
//
//   - Faults are misses on counted references, so
//     0 <= Faults <= References <= len(trace) always holds.
//
// Runs own their frame table and policy state. The trace is only read, so
// many runs may share it.
package replacement
