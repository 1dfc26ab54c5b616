package schedule

// buildWaves batches entries (in declaration order) into waves via
// forward-only list scheduling: an entry's wave index is one past the
// highest wave index of every already-placed entry it conflicts with (0
// if it conflicts with none). This never backfills an entry into a wave
// that precedes one already claimed by something it conflicts with —
// unlike "drop into the first non-conflicting wave," which can let a
// later entry slip in front of an intervening conflicting entry just
// because that earlier wave happens not to conflict with it directly.
func buildWaves(entries []*systemEntry) [][]*systemEntry {
	waveOf := make([]int, len(entries))
	maxWave := -1

	for i, e := range entries {
		access := e.declareOnce()
		wave := 0
		for j := 0; j < i; j++ {
			if access.Conflicts(entries[j].declareOnce()) && waveOf[j]+1 > wave {
				wave = waveOf[j] + 1
			}
		}
		waveOf[i] = wave
		if wave > maxWave {
			maxWave = wave
		}
	}

	waves := make([][]*systemEntry, maxWave+1)
	for i, e := range entries {
		waves[waveOf[i]] = append(waves[waveOf[i]], e)
	}
	return waves
}
