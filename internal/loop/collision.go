package loop

import (
	"github.com/tomz197/voyager/internal/object"
	"github.com/tomz197/voyager/internal/physics"
)

// detectContacts loads this tick's asteroid bodies and hands the first
// contact of the ship to the resolver.
func (g *Game) detectContacts() {
	if g.resolver == nil || g.resolver.Fired() || !g.Round.Active() {
		return
	}
	g.space.Begin()
	for _, obj := range g.objects {
		if c, ok := obj.(object.Collider); ok && c.Body().Tag == object.AsteroidTag {
			g.space.Add(c.Body())
		}
	}
	g.space.Contacts(g.ship.Body(), func(other *physics.Body) bool {
		g.resolver.Collide(other.Tag)
		return true
	})
}
