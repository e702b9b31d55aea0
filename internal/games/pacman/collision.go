package pacman

import "github.com/vovakirdan/tui-pacman/internal/core"

// touches reports whether the player overlaps e. The trigger distance is
// the entity's width, measured between integer centers.
func touches(p Player, e Entity) bool {
	pc, ec := p.Center(), e.Center()
	return core.Distance(pc.X, pc.Y, ec.X, ec.Y) < float64(e.Size.W)
}

// checkCollisions runs one full pass over coins, enemies and cherries, in
// that order, and reports whether the score changed. Consumed entities are
// skipped, so repeating the pass without movement changes nothing.
func (s *Session) checkCollisions() bool {
	before := s.score

	for i := range s.coins {
		c := &s.coins[i]
		if c.Consumed || !touches(s.player, *c) {
			continue
		}
		c.Consumed = true
		s.score += KindCoin.Value(s.cfg)
	}

	for i := range s.enemies {
		e := &s.enemies[i]
		if e.Consumed || !touches(s.player, *e) {
			continue
		}
		if e.Vulnerable {
			e.Consumed = true
			s.score += KindEnemy.Value(s.cfg)
			continue
		}
		s.player.Consumed = true
	}

	for i := range s.cherries {
		c := &s.cherries[i]
		if c.Consumed || !touches(s.player, *c) {
			continue
		}
		c.Consumed = true
		s.score += KindCherry.Value(s.cfg)
		s.frightenEnemies()
	}

	return s.score != before
}

// frightenEnemies makes every enemy vulnerable for the rest of the session.
func (s *Session) frightenEnemies() {
	for i := range s.enemies {
		s.enemies[i].Vulnerable = true
		s.enemies[i].Skin = SkinEnemyVulnerable
	}
	s.logger.Debug("enemies vulnerable", "count", len(s.enemies))
}
