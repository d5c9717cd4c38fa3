package main

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"

	"github.com/dokkaebi/sajucut/internal/logger"
)

func withPanicGuard(scope string, onPanic func(any), fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Recovered panic", "scope", scope, "panic", fmt.Sprint(r))
			if onPanic != nil {
				onPanic(r)
			}
		}
	}()
	fn()
}

func safeGo(scope string, fn func()) {
	go func() {
		withPanicGuard(scope, nil, fn)
	}()
}

func safeDo(scope string, fn func()) {
	withPanicGuard(scope+".dispatch", nil, func() {
		fyne.Do(func() {
			withPanicGuard(scope, nil, fn)
		})
	})
}

func (a *sajuApp) safeGo(scope string, fn func()) {
	if a == nil {
		safeGo(scope, fn)
		return
	}
	go func() {
		withPanicGuard(scope, func(r any) {
			a.handleRecoveredPanic(scope, r)
		}, fn)
	}()
}

func (a *sajuApp) safeDo(scope string, fn func()) {
	if a == nil {
		safeDo(scope, fn)
		return
	}
	withPanicGuard(scope+".dispatch", func(r any) {
		a.handleRecoveredPanic(scope+".dispatch", r)
	}, func() {
		fyne.Do(func() {
			withPanicGuard(scope, func(r any) {
				a.handleRecoveredPanic(scope, r)
			}, fn)
		})
	})
}

func (a *sajuApp) handleRecoveredPanic(scope string, _ any) {
	if a == nil {
		return
	}
	if fyne.CurrentApp() == nil {
		return
	}
	a.cancelActive("panic recovered: " + scope)

	a.panicNoticeOnce.Do(func() {
		a.safeDo("panic.notice", func() {
			if a.window == nil {
				return
			}
			dialog.ShowInformation(
				"오류",
				"내부 오류가 발생하여 진행 중이던 작업을 중단했습니다. 다시 시도해 주세요. 반복되면 앱을 재시작해 주세요.",
				a.window,
			)
		})
	})
}
