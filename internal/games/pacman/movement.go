package pacman

// canMove applies the don't-move policy: a step that would touch or cross
// an arena edge is refused outright instead of being clamped.
func canMove(pos Point, size Size, b Bounds, dir Direction, speed int) bool {
	if speed <= 0 {
		return false
	}
	switch dir {
	case DirRight:
		return pos.X+speed+size.W < b.Width
	case DirLeft:
		return pos.X-speed > 0
	case DirDown:
		return pos.Y+speed+size.H < b.Height
	case DirUp:
		return pos.Y-speed > 0
	default:
		return false
	}
}

func step(pos Point, dir Direction, speed int) Point {
	dx, dy := dir.delta()
	return Point{X: pos.X + dx*speed, Y: pos.Y + dy*speed}
}

// movePlayer moves the player one step and reports whether it moved.
// Facing only follows accepted moves.
func (s *Session) movePlayer(dir Direction, speed int) bool {
	if !canMove(s.player.Pos, s.player.Size, s.bounds, dir, speed) {
		return false
	}
	s.player.Pos = step(s.player.Pos, dir, speed)
	s.player.Facing = dir
	return true
}

// moveEnemies mirrors the player: every enemy steps in dir, each checked
// against the arena edges on its own.
func (s *Session) moveEnemies(dir Direction) {
	for i := range s.enemies {
		e := &s.enemies[i]
		speed := s.enemySpeed(*e)
		if canMove(e.Pos, e.Size, s.bounds, dir, speed) {
			e.Pos = step(e.Pos, dir, speed)
		}
	}
}

// enemySpeed is the player speed scaled by the enemy's state: normal 1x,
// vulnerable uses the configured multiplier, consumed enemies stay put.
func (s *Session) enemySpeed(e Entity) int {
	switch {
	case e.Consumed:
		return 0
	case e.Vulnerable:
		return s.cfg.Player.Speed * s.cfg.Enemies.VulnerableSpeedMultiplier
	default:
		return s.cfg.Player.Speed
	}
}
