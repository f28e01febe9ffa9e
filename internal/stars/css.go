package stars

import (
	"fmt"
	"strings"
)

// BoxShadows renders a layer as the comma-separated box-shadow list the
// pure-CSS starfield uses: one "Xpx Ypx #FFF" entry per star.
func BoxShadows(l Layer, hex string) string {
	parts := make([]string, len(l.Stars))
	for i, st := range l.Stars {
		parts[i] = fmt.Sprintf("%dpx %dpx %s", st.X, st.Y, hex)
	}
	return strings.Join(parts, ", ")
}

var layerIDs = []string{"stars", "stars2", "stars3"}

func layerID(i int) string {
	if i < len(layerIDs) {
		return layerIDs[i]
	}
	return fmt.Sprintf("stars%d", i+1)
}

// StarfieldCSS produces a stylesheet animating the starfield without script.
func StarfieldCSS(sf *Starfield) string {
	var sb strings.Builder
	hex := strings.ToUpper(sf.params.Color.Hex())
	fh := sf.params.FieldHeight

	for i, l := range sf.layers {
		shadows := BoxShadows(l, hex)
		id := layerID(i)
		fmt.Fprintf(&sb, `#%s {
  position: fixed;
  width: %gpx;
  height: %gpx;
  background: transparent;
  box-shadow: %s;
  animation: animStar %gs linear infinite;
  z-index: -1;
  pointer-events: none;
}

#%s:after {
  content: " ";
  position: absolute;
  top: %dpx;
  width: %gpx;
  height: %gpx;
  background: transparent;
  box-shadow: %s;
}

`, id, l.Size, l.Size, shadows, l.Period, id, fh, l.Size, l.Size, shadows)
	}

	fmt.Fprintf(&sb, `@keyframes animStar {
  from { transform: translateY(0px); }
  to { transform: translateY(-%dpx); }
}

@media (prefers-reduced-motion: reduce) {
  %s { animation: none; }
}
`, fh, selectorList(len(sf.layers)))
	return sb.String()
}

func selectorList(n int) string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = "#" + layerID(i)
	}
	return strings.Join(ids, ", ")
}

// ShootingStarsCSS produces the per-streak custom properties and keyframes.
// Streaks are matched by .star:nth-child(i).
func ShootingStarsCSS(ss *ShootingStars) string {
	var sb strings.Builder
	p := ss.params

	fmt.Fprintf(&sb, `.stars-background {
  position: fixed; top: 0; left: 0; width: 100%%; height: 100%%;
  background: radial-gradient(ellipse at bottom, %s 0%%, %s 100%%);
  z-index: -2; pointer-events: none;
}

.stars {
  position: fixed; top: 0; left: 0; width: 100%%; height: 120%%;
  transform: rotate(-45deg); pointer-events: none; z-index: -1;
}

.star {
  --star-color: %s;
  --star-tail-length: 6em;
  --star-tail-height: %gpx;
  --star-width: calc(var(--star-tail-length) / 6);
  --fall-duration: 9s;
  --tail-fade-duration: var(--fall-duration);
  position: absolute;
  top: var(--top-offset);
  left: 0;
  width: var(--star-tail-length);
  height: var(--star-tail-height);
  color: var(--star-color);
  background: linear-gradient(45deg, currentColor, transparent);
  border-radius: 50%%;
  transform: translate3d(%gem, 0, 0);
  animation: fall var(--fall-duration) var(--fall-delay) linear infinite,
             tail-fade var(--tail-fade-duration) var(--fall-delay) ease-out infinite;
}

@media screen and (min-width: %gpx) {
  .star { filter: drop-shadow(0 0 6px currentColor); }
}

@media screen and (max-width: %gpx) {
  .star { animation: fall var(--fall-duration) var(--fall-delay) linear infinite; }
}
`, p.Horizon.Hex(), p.Background.Hex(), p.Color.Hex(), ss.Thickness(), startEm, p.GlowWidth+1, p.GlowWidth)

	for i, st := range ss.streaks {
		fmt.Fprintf(&sb, `
.star:nth-child(%d) {
  --star-tail-length: %gem;
  --top-offset: %gvh;
  --fall-duration: %gs;
  --fall-delay: %gs;
}
`, i+1, st.Tail/emPx, st.Top*100, st.Duration, st.Delay)
	}

	fmt.Fprintf(&sb, `
@keyframes fall {
  to { transform: translate3d(%gem, 0, 0); }
}

@keyframes tail-fade {
  0%%, 50%% { width: var(--star-tail-length); opacity: 1; }
  70%%, 80%% { width: 0; opacity: 0.4; }
  100%% { width: 0; opacity: 0; }
}

@media (prefers-reduced-motion: reduce) {
  .star { animation: none; opacity: %g; }
}
`, endEm, restOpacity)
	return sb.String()
}
