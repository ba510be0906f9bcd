package sim

import (
	"log/slog"

	"github.com/pthm-cable/evosim/genome"
	"github.com/pthm-cable/evosim/telemetry"
	"github.com/pthm-cable/evosim/traits"
)

// recordOutcome turns one organism update into telemetry events.
func (s *Simulation) recordOutcome(out Outcome) {
	if out.Skipped {
		return
	}
	if out.AteFood {
		s.collector.Record(telemetry.NewFoodEatenEvent(s.tick, out.ID, out.Class, out.FoodEnergy))
		s.lifetime.RecordFood(out.ID, out.FoodEnergy)
	}
	if out.Killed {
		s.collector.Record(telemetry.NewKillEvent(s.tick, out.ID, out.PreyID, out.Harvested))
		s.lifetime.RecordKill(out.ID, out.Harvested)
	}
	if out.Born {
		s.collector.Record(telemetry.NewBirthEvent(s.tick, out.ChildID, out.ID, out.ChildClass))
		s.lifetime.RegisterChild(out.ChildID, out.ID, s.tick)
	}
}

// recordDeaths records the organisms evicted at the end of the tick.
func (s *Simulation) recordDeaths(removed []Removed) {
	for _, r := range removed {
		s.collector.Record(telemetry.NewDeathEvent(s.tick, r.ID, r.Class, r.Cause, r.Age))
		s.lifetime.Remove(r.ID)
	}
}

// recordPopulation appends this tick's class counts to the history and
// checks for extinctions.
func (s *Simulation) recordPopulation() {
	predators, herbivores := s.env.PopulationCounts()
	point := telemetry.PopulationPoint{Tick: s.tick, Predators: predators, Herbivores: herbivores}
	s.history.Record(point)
	if s.output != nil {
		s.pendingPopulation = append(s.pendingPopulation, point)
	}

	for _, bm := range s.bookmarks.CheckPopulation(s.tick, predators, herbivores) {
		s.handleBookmark(bm)
	}
}

// flushTelemetry checks if the stats window should be flushed and handles bookmarks.
func (s *Simulation) flushTelemetry() {
	if !s.collector.ShouldFlush(s.tick) {
		return
	}

	stats := s.collector.Flush(s.tick, s.rosterSample())
	perfStats := s.perf.Stats()

	// Call stats callback if provided
	if s.statsCallback != nil {
		s.statsCallback(stats)
	}

	// Log stats if enabled (console output)
	if s.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := s.output.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := s.output.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
	if err := s.writePendingPopulation(); err != nil {
		slog.Error("failed to write population", "error", err)
	}

	for _, bm := range s.bookmarks.Check(stats) {
		s.handleBookmark(bm)
	}
}

func (s *Simulation) handleBookmark(bm telemetry.Bookmark) {
	if bm.Type == telemetry.BookmarkExtinction {
		slog.Info("extinction reached", "tick", bm.Tick)
	} else if s.logStats {
		bm.LogBookmark()
	}

	if err := s.output.WriteBookmark(bm); err != nil {
		slog.Error("failed to write bookmark", "error", err)
	}
}

func (s *Simulation) writePendingPopulation() error {
	if len(s.pendingPopulation) == 0 {
		return nil
	}
	err := s.output.WritePopulation(s.pendingPopulation)
	s.pendingPopulation = s.pendingPopulation[:0]
	return err
}

// rosterSample collects energies and traits of the living roster.
func (s *Simulation) rosterSample() telemetry.RosterSample {
	sample := telemetry.RosterSample{
		Food:          s.env.FoodCount(),
		MaxGeneration: s.lifetime.LiveMaxGeneration(),
	}

	for _, e := range s.env.roster {
		_, _, body, vitals, org := s.env.orgMapper.Get(e)
		if !vitals.Alive {
			continue
		}

		if org.Class() == traits.Predator {
			sample.Predators++
			sample.PredatorEnergies = append(sample.PredatorEnergies, vitals.Energy)
		} else {
			sample.Herbivores++
			sample.HerbivoreEnergies = append(sample.HerbivoreEnergies, vitals.Energy)
		}

		sample.Metabolism = append(sample.Metabolism, org.Genome.Float(genome.MetabolismRate, traits.DefaultMetabolismRate))
		sample.Sense = append(sample.Sense, org.Traits.FoodSenseDistance)
		sample.Activeness = append(sample.Activeness, org.Genome.Float(genome.Activeness, defaultActiveness))
		sample.Size = append(sample.Size, body.Size)

		// Update lifetime peak energy
		s.lifetime.UpdateEnergy(org.ID, vitals.Energy)
	}

	return sample
}
