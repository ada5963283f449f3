package ocean

import (
	"runtime"
	"sync"

	"gonum.org/v1/gonum/dsp/fourier"
)

// parallelThreshold is the minimum grid dimension to use parallel passes.
// Below this, single-threaded is faster due to goroutine overhead.
const parallelThreshold = 64

// lineChunk is a range of lines of one buffer for a worker to transform.
type lineChunk struct {
	start, end int
	columns    bool
	buf        []complex128
}

// transformScratch holds one worker's FFT plan and line buffers. Plans carry
// internal state across calls, so workers never share one.
type transformScratch struct {
	fft  *fourier.CmplxFFT
	work []complex128
	out  []complex128
}

// transformPool runs the row and column passes of the 2D transform across
// persistent workers. Lines within a pass are independent; the dispatcher
// only returns once every chunk of a pass is done, so the column pass never
// overlaps the row pass.
type transformPool struct {
	n          int
	scratches  []transformScratch
	numWorkers int

	// Worker pool channels
	workChan chan lineChunk // sends work to workers
	doneChan chan struct{}  // workers signal completion
	stopChan chan struct{}  // signals workers to exit
	wg       sync.WaitGroup // tracks active workers
	running  bool           // true if workers are running
}

func newTransformPool(n int) *transformPool {
	numWorkers := runtime.GOMAXPROCS(0)
	scratches := make([]transformScratch, numWorkers)
	for i := range scratches {
		scratches[i] = transformScratch{
			fft:  fourier.NewCmplxFFT(n),
			work: make([]complex128, n),
			out:  make([]complex128, n),
		}
	}
	return &transformPool{
		n:          n,
		scratches:  scratches,
		numWorkers: numWorkers,
	}
}

// startWorkers launches persistent worker goroutines.
func (p *transformPool) startWorkers() {
	if p.running {
		return
	}

	p.workChan = make(chan lineChunk, p.numWorkers)
	p.doneChan = make(chan struct{}, p.numWorkers)
	p.stopChan = make(chan struct{})
	p.running = true

	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
}

// stopWorkers signals all workers to exit and waits for them.
func (p *transformPool) stopWorkers() {
	if !p.running {
		return
	}

	close(p.stopChan)
	p.wg.Wait()
	close(p.workChan)
	close(p.doneChan)
	p.running = false
}

// worker runs in a goroutine, transforming chunks until stopped.
func (p *transformPool) worker(workerID int) {
	defer p.wg.Done()
	scratch := &p.scratches[workerID]

	for {
		select {
		case <-p.stopChan:
			return
		case chunk, ok := <-p.workChan:
			if !ok {
				return
			}
			p.runChunk(chunk, scratch)
			p.doneChan <- struct{}{}
		}
	}
}

// runChunk transforms one range of lines in place.
func (p *transformPool) runChunk(c lineChunk, s *transformScratch) {
	n := p.n
	if c.columns {
		for x := c.start; x < c.end; x++ {
			for z := 0; z < n; z++ {
				s.work[z] = c.buf[z*n+x]
			}
			s.fft.Coefficients(s.out, s.work)
			for z := 0; z < n; z++ {
				c.buf[z*n+x] = s.out[z]
			}
		}
		return
	}
	for z := c.start; z < c.end; z++ {
		row := c.buf[z*n : (z+1)*n]
		copy(s.work, row)
		s.fft.Coefficients(row, s.work)
	}
}

// pass transforms all n lines of buf in one direction; columns selects the
// column pass. Small grids run on the calling goroutine.
func (p *transformPool) pass(buf []complex128, columns bool) {
	if p.n < parallelThreshold {
		p.runChunk(lineChunk{start: 0, end: p.n, columns: columns, buf: buf}, &p.scratches[0])
		return
	}

	if !p.running {
		p.startWorkers()
	}

	chunkSize := (p.n + p.numWorkers - 1) / p.numWorkers

	dispatched := 0
	for w := 0; w < p.numWorkers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > p.n {
			end = p.n
		}
		if start >= end {
			continue
		}

		p.workChan <- lineChunk{start: start, end: end, columns: columns, buf: buf}
		dispatched++
	}

	for i := 0; i < dispatched; i++ {
		<-p.doneChan
	}
}
