package sim_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/particlefield/internal/field"
	"github.com/san-kum/particlefield/internal/sim"
)

type tracker struct {
	resizes  int
	advances int
	renders  int
}

func (p *tracker) Name() string           { return "tracker" }
func (p *tracker) Resize(w, h float64)    { p.resizes++ }
func (p *tracker) Advance()               { p.advances++ }
func (p *tracker) Render(s field.Surface) { p.renders++ }

type blank struct{}

func (blank) Clear(w, h float64)                                  {}
func (blank) FillRect(x, y, w, h float64, c field.Color)          {}
func (blank) FillCircle(x, y, r float64, c field.Color)           {}
func (blank) StrokeLine(x0, y0, x1, y1, w float64, c field.Color) {}

var _ = Describe("Simulator", func() {
	var (
		effect *tracker
		loop   *sim.Loop
		cfg    sim.Config
		frame  time.Duration
	)

	BeforeEach(func() {
		effect = &tracker{}
		cfg = sim.Config{Width: 1024, Height: 768, ResizeDebounce: sim.DefaultDebounce}
	})

	JustBeforeEach(func() {
		var err error
		loop, err = sim.NewLoop(effect, blank{}, cfg)
		Expect(err).NotTo(HaveOccurred())
		frame = loop.Interval()
	})

	Describe("running", func() {
		It("advances and renders once per frame with one request outstanding", func() {
			Expect(loop.Start()).To(Succeed())
			Expect(loop.State()).To(Equal(sim.Running))
			for i := 0; i < 10; i++ {
				loop.Tick(frame)
				Expect(loop.Queue.Len()).To(Equal(1))
			}
			Expect(effect.advances).To(Equal(10))
			Expect(effect.renders).To(Equal(10))
		})

		It("ignores a second Start", func() {
			Expect(loop.Start()).To(Succeed())
			Expect(loop.Start()).To(Succeed())
			Expect(loop.Queue.Len()).To(Equal(1))
		})
	})

	Describe("visibility", func() {
		JustBeforeEach(func() {
			Expect(loop.Start()).To(Succeed())
			loop.Tick(frame)
		})

		It("pauses with no frame outstanding while hidden", func() {
			loop.SetVisible(false)
			Expect(loop.State()).To(Equal(sim.Paused))
			Expect(loop.Queue.Len()).To(BeZero())
			for i := 0; i < 5; i++ {
				loop.Tick(frame)
			}
			Expect(effect.advances).To(Equal(1))
		})

		It("resumes where it left off", func() {
			loop.SetVisible(false)
			loop.SetVisible(true)
			loop.SetVisible(true)
			Expect(loop.State()).To(Equal(sim.Running))
			Expect(loop.Queue.Len()).To(Equal(1))
			loop.Tick(frame)
			Expect(effect.advances).To(Equal(2))
		})
	})

	Describe("resizing", func() {
		It("collapses resizes inside the debounce window into one regeneration", func() {
			Expect(loop.Start()).To(Succeed())
			before := effect.resizes

			loop.Resize(300, 300)
			loop.Tick(100 * time.Millisecond)
			loop.Resize(300, 300)
			loop.Tick(100 * time.Millisecond)
			loop.Resize(300, 300)
			Expect(effect.resizes).To(Equal(before))
			Expect(loop.ResizePending()).To(BeTrue())

			loop.Tick(250 * time.Millisecond)
			Expect(effect.resizes - before).To(Equal(1))
			Expect(loop.Regenerations()).To(Equal(1))
			w, h := loop.Size()
			Expect(w).To(Equal(300.0))
			Expect(h).To(Equal(300.0))

			loop.Tick(time.Second)
			Expect(effect.resizes - before).To(Equal(1))
		})

		It("regenerates separately for resizes further apart than the window", func() {
			loop.Resize(500, 400)
			loop.Tick(300 * time.Millisecond)
			loop.Resize(600, 400)
			loop.Tick(300 * time.Millisecond)
			Expect(loop.Regenerations()).To(Equal(2))
		})

		It("keeps regenerating while paused", func() {
			Expect(loop.Start()).To(Succeed())
			loop.SetVisible(false)
			loop.Resize(320, 240)
			loop.Tick(time.Second)
			Expect(loop.Regenerations()).To(Equal(1))
			Expect(effect.advances).To(BeZero())
		})
	})

	Context("with reduced motion", func() {
		BeforeEach(func() {
			cfg.ReducedMotion = true
		})

		It("renders exactly once and never advances", func() {
			Expect(loop.Start()).To(Succeed())
			Expect(loop.Start()).To(Succeed())
			loop.SetVisible(false)
			loop.SetVisible(true)
			loop.Resize(400, 400)
			for i := 0; i < 60; i++ {
				loop.Tick(frame)
			}
			Expect(effect.renders).To(Equal(1))
			Expect(effect.advances).To(BeZero())
			Expect(loop.State()).To(Equal(sim.Paused))
			Expect(loop.Queue.Len()).To(BeZero())
		})
	})

	Describe("stopping", func() {
		It("cancels the outstanding frame and any pending resize", func() {
			Expect(loop.Start()).To(Succeed())
			loop.Resize(200, 200)
			loop.Stop()
			Expect(loop.Queue.Len()).To(BeZero())
			Expect(loop.Clock.Pending()).To(BeZero())
			loop.Tick(time.Second)
			Expect(effect.advances).To(BeZero())
			Expect(loop.Regenerations()).To(BeZero())
			Expect(loop.Start()).To(MatchError(sim.ErrStopped))
		})
	})
})
