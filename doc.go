// Package collector provides a lock-free blocked stealing collector.
//
// It is essentially a lock-free stack tailored for collection: Steal
// takes every accumulated value with a single atomic operation, and
// values are stored in blocks of a fixed size to amortize the cost of
// heap allocations. Pushes from any number of goroutines never block
// and never fail; memory grows without bound until someone steals.
//
//	c := collector.New[string](30)
//
//	var g errgroup.Group
//	for range 30 {
//		g.Go(func() error {
//			for num := range 10 {
//				c.Push(strconv.Itoa(num))
//			}
//			return nil
//		})
//	}
//	g.Wait()
//
//	cnt := 0
//	c.Collect(func(string) { cnt++ })
//	// cnt == 300
//
// Dropping a Collector abandons any unstolen values to the garbage
// collector. For continuous consumption, pair a Collector with a
// Flusher.
package collector
