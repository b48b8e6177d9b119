package sim_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/digirain/internal/rain"
	"github.com/san-kum/digirain/internal/sim"
	"github.com/san-kum/digirain/internal/term"
)

// scriptedDriver is a headless driver with injectable failures.
type scriptedDriver struct {
	*term.Headless
	initErr error
	sizeErr error
	pollErr error
	drawErr error
	finiErr error
	failAt  int
	polls   int
	finis   int
}

func newScripted(cols, rows int) *scriptedDriver {
	return &scriptedDriver{Headless: term.NewHeadless(cols, rows)}
}

func (d *scriptedDriver) Init() error {
	if d.initErr != nil {
		return d.initErr
	}
	return d.Headless.Init()
}

func (d *scriptedDriver) Size() (int, int, error) {
	if d.sizeErr != nil {
		return 0, 0, d.sizeErr
	}
	return d.Headless.Size()
}

func (d *scriptedDriver) Poll(ctx context.Context, timeout time.Duration) (term.Event, error) {
	d.polls++
	if d.pollErr != nil && d.polls >= d.failAt {
		return term.Event{}, d.pollErr
	}
	return d.Headless.Poll(ctx, timeout)
}

func (d *scriptedDriver) Draw(f *rain.Frame) error {
	if d.drawErr != nil {
		return d.drawErr
	}
	return d.Headless.Draw(f)
}

func (d *scriptedDriver) Fini() error {
	d.finis++
	_ = d.Headless.Fini()
	return d.finiErr
}

type countMetric struct{ n int }

func (c *countMetric) Name() string           { return "count" }
func (c *countMetric) Observe(_ sim.TickInfo) { c.n++ }
func (c *countMetric) Value() float64         { return float64(c.n) }
func (c *countMetric) Reset()                 { c.n = 0 }

var _ = Describe("Simulator", func() {
	var (
		ctx    context.Context
		eng    *rain.Engine
		driver *scriptedDriver
	)

	BeforeEach(func() {
		ctx = context.Background()
		eng = rain.New(1, 1, rain.WithSeed(17))
		driver = newScripted(20, 10)
	})

	It("adopts the driver size before the first tick", func() {
		s := sim.New(eng, driver)
		_, err := s.Run(ctx, sim.Config{MaxTicks: 1})
		Expect(err).NotTo(HaveOccurred())

		cols, rows := eng.Size()
		Expect(cols).To(Equal(20))
		Expect(rows).To(Equal(10))
	})

	It("stops after MaxTicks and restores the terminal", func() {
		s := sim.New(eng, driver)
		res, err := s.Run(ctx, sim.Config{MaxTicks: 50})

		Expect(err).NotTo(HaveOccurred())
		Expect(res.Reason).To(Equal(sim.StopMaxTicks))
		Expect(res.Ticks).To(Equal(50))
		Expect(res.Live).To(HaveLen(50))
		Expect(driver.Frames()).To(Equal(50))
		Expect(driver.finis).To(Equal(1))
		Expect(driver.Closed()).To(BeTrue())
	})

	It("adds exactly one stream per tick under the literal policy", func() {
		driver = newScripted(20, 200)
		s := sim.New(eng, driver)
		res, err := s.Run(ctx, sim.Config{MaxTicks: 10})

		Expect(err).NotTo(HaveOccurred())
		Expect(res.Spawned).To(Equal(10))
		Expect(res.Retired).To(BeZero())
		Expect(res.Live).To(Equal([]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}))
		Expect(eng.NextID()).To(Equal(10))
	})

	It("never keeps a stream whose trail has left the screen", func() {
		s := sim.New(eng, driver)
		s.AddObserver(sim.ObserverFunc(func(info sim.TickInfo) {
			_, rows := eng.Size()
			for _, st := range eng.Streams() {
				Expect(st.Gone(rows)).To(BeFalse())
				Expect(st.Col).To(BeNumerically("<", 20))
				Expect(st.Length).To(BeNumerically(">=", rain.MinLength))
			}
			Expect(info.Frame.Rows).To(Equal(rows))
		}))

		res, err := s.Run(ctx, sim.Config{MaxTicks: 400})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Retired).To(BeNumerically(">", 0))
		Expect(res.Spawned - res.Retired).To(Equal(eng.Len()))
	})

	DescribeTable("exits on a quit key without drawing",
		func(ev term.Event) {
			driver.Push(ev)
			s := sim.New(eng, driver)
			res, err := s.Run(ctx, sim.Config{})

			Expect(err).NotTo(HaveOccurred())
			Expect(res.Reason).To(Equal(sim.StopQuit))
			Expect(res.Ticks).To(BeZero())
			Expect(driver.Frames()).To(BeZero())
			Expect(eng.NextID()).To(Equal(1))
			Expect(driver.finis).To(Equal(1))
		},
		Entry("q", term.Event{Kind: term.EventKey, Key: term.KeyRune, Rune: 'q'}),
		Entry("escape", term.Event{Kind: term.EventKey, Key: term.KeyEscape}),
		Entry("ctrl+c", term.Event{Kind: term.EventKey, Key: term.KeyCtrlC}),
	)

	It("ignores other keys", func() {
		driver.Push(term.Event{Kind: term.EventKey, Key: term.KeyRune, Rune: 'x'})
		s := sim.New(eng, driver)
		res, err := s.Run(ctx, sim.Config{MaxTicks: 3})

		Expect(err).NotTo(HaveOccurred())
		Expect(res.Ticks).To(Equal(3))
	})

	It("clears every stream on resize and uses the new bounds", func() {
		for range 5 {
			driver.Push(term.Event{})
		}
		driver.Push(term.Event{Kind: term.EventResize, Cols: 8, Rows: 4})

		var infos []sim.TickInfo
		s := sim.New(eng, driver)
		s.AddObserver(sim.ObserverFunc(func(info sim.TickInfo) {
			infos = append(infos, sim.TickInfo{
				Tick: info.Tick, Live: info.Live, Resized: info.Resized,
			})
			if info.Tick == 6 {
				Expect(info.Frame.Cols).To(Equal(8))
				Expect(info.Frame.Rows).To(Equal(4))
				Expect(info.Frame.NonBlank()).To(BeZero())
			}
			if info.Tick > 6 {
				for _, st := range eng.Streams() {
					Expect(st.ID).To(BeNumerically(">=", 6))
					Expect(st.Col).To(BeNumerically("<", 8))
				}
			}
		}))

		res, err := s.Run(ctx, sim.Config{MaxTicks: 12})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Resizes).To(Equal(1))
		Expect(infos[5].Resized).To(BeTrue())
		Expect(infos[5].Live).To(BeZero())
		Expect(infos[4].Live).To(Equal(5))
		Expect(infos[6].Live).To(Equal(1))
	})

	It("reports metrics by name", func() {
		m := &countMetric{n: 99}
		s := sim.New(eng, driver)
		s.AddMetric(m)
		res, err := s.Run(ctx, sim.Config{MaxTicks: 7})

		Expect(err).NotTo(HaveOccurred())
		Expect(res.Metrics).To(HaveKeyWithValue("count", 7.0))
	})

	It("stops when the context is canceled", func() {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		s := sim.New(eng, driver)
		res, err := s.Run(cctx, sim.Config{})

		Expect(err).To(MatchError(context.Canceled))
		Expect(res.Reason).To(Equal(sim.StopCanceled))
		Expect(driver.finis).To(Equal(1))
	})

	It("rejects a negative interval before touching the terminal", func() {
		s := sim.New(eng, driver)
		_, err := s.Run(ctx, sim.Config{Interval: -time.Millisecond})

		Expect(err).To(HaveOccurred())
		Expect(driver.finis).To(BeZero())
	})

	Context("when the terminal fails", func() {
		boom := errors.New("boom")

		It("restores after a failed init", func() {
			driver.initErr = boom
			s := sim.New(eng, driver)
			res, err := s.Run(ctx, sim.Config{})

			Expect(err).To(MatchError(boom))
			Expect(res.Reason).To(Equal(sim.StopError))
			Expect(driver.finis).To(Equal(1))
		})

		It("wraps a size failure", func() {
			driver.sizeErr = boom
			s := sim.New(eng, driver)
			_, err := s.Run(ctx, sim.Config{})

			var te *term.Error
			Expect(errors.As(err, &te)).To(BeTrue())
			Expect(te.Op).To(Equal("size"))
			Expect(driver.finis).To(Equal(1))
		})

		It("aborts on a poll failure mid-run", func() {
			driver.pollErr, driver.failAt = boom, 4
			s := sim.New(eng, driver)
			res, err := s.Run(ctx, sim.Config{})

			var te *term.Error
			Expect(errors.As(err, &te)).To(BeTrue())
			Expect(te.Op).To(Equal("poll"))
			Expect(err).To(MatchError(boom))
			Expect(res.Ticks).To(Equal(3))
			Expect(res.Reason).To(Equal(sim.StopError))
			Expect(driver.finis).To(Equal(1))
		})

		It("aborts on a draw failure", func() {
			driver.drawErr = boom
			s := sim.New(eng, driver)
			res, err := s.Run(ctx, sim.Config{})

			Expect(err).To(MatchError(boom))
			Expect(res.Ticks).To(BeZero())
			Expect(driver.finis).To(Equal(1))
		})

		It("joins a restore failure with a clean quit", func() {
			driver.finiErr = boom
			driver.Push(term.Event{Kind: term.EventKey, Key: term.KeyEscape})
			s := sim.New(eng, driver)
			res, err := s.Run(ctx, sim.Config{})

			Expect(err).To(MatchError(boom))
			Expect(res.Reason).To(Equal(sim.StopQuit))
		})
	})
})

var _ = Describe("Ensemble", func() {
	It("runs every configuration to completion", func() {
		specs := []sim.Spec{
			{Cols: 40, Rows: 12, Seed: 1},
			{Cols: 80, Rows: 24, Seed: 2, Policy: rain.SpawnSingle},
			{Cols: 40, Rows: 12, Seed: 1},
		}
		e := sim.NewEnsemble(120, func() []sim.Metric { return []sim.Metric{&countMetric{}} }, specs...)
		results, err := e.Run(context.Background())

		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveLen(3))
		for _, r := range results {
			Expect(r.Ticks).To(Equal(120))
			Expect(r.Metrics["count"]).To(Equal(120.0))
		}
		Expect(results[0].Live).To(Equal(results[2].Live))
	})
})
