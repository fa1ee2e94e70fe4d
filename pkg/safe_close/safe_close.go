// Package safe_close coordinates graceful shutdown of multiple goroutines.
// Package safe_close 协调多个 goroutine 的优雅关闭
package safe_close

import (
	"sync"
)

// SafeClose 管理一组后台任务的关闭流程
// Attach 注册任务，SendCloseSignal 广播关闭，WaitClosed 等待全部退出
type SafeClose struct {
	m sync.Mutex

	closeSignal chan struct{}
	closeErr    error
	closeOnce   sync.Once

	wg sync.WaitGroup
}

func NewSafeClose() *SafeClose {
	return &SafeClose{
		closeSignal: make(chan struct{}),
	}
}

// Attach 注册一个后台任务
// f 必须在退出时调用 done，并监听 closeSignal 以响应关闭
func (s *SafeClose) Attach(f func(done func(), closeSignal <-chan struct{})) {
	s.wg.Add(1)
	go f(s.wg.Done, s.closeSignal)
}

// SendCloseSignal 广播关闭信号，首个非 nil 错误会被记录
// 可以被多次调用，只有第一次生效
func (s *SafeClose) SendCloseSignal(err error) {
	s.closeOnce.Do(func() {
		s.m.Lock()
		s.closeErr = err
		s.m.Unlock()
		close(s.closeSignal)
	})
}

// CloseSignal 返回关闭信号通道
func (s *SafeClose) CloseSignal() <-chan struct{} {
	return s.closeSignal
}

// WaitClosed 阻塞直到所有已注册任务退出，返回关闭原因
func (s *SafeClose) WaitClosed() error {
	s.wg.Wait()
	s.m.Lock()
	defer s.m.Unlock()
	return s.closeErr
}
