package contactform

// cancelPendingClear stops a scheduled status clear. Bumping clearGen also
// neutralizes a timer that has already fired but not yet taken the lock.
func (c *Controller) cancelPendingClear() {
	c.mu.Lock()
	t := c.pendingClear
	c.pendingClear = nil
	c.clearGen++
	c.mu.Unlock()
	if t != nil {
		t.Stop()
	}
}

// clearStatus empties the status region and drops any scheduled clear.
func (c *Controller) clearStatus() {
	c.cancelPendingClear()
	c.status.Set(ClassStatus, "")
}

func (c *Controller) showStatus(kind, text string) {
	c.cancelPendingClear()
	c.status.Set(ClassStatus+" "+kind, text)
	c.status.ScrollIntoView()
}

func (c *Controller) showError(text string) {
	c.showStatus(ClassStatusError, text)
}

// showSuccess displays text and schedules it to disappear after the
// configured delay.
func (c *Controller) showSuccess(text string) {
	c.showStatus(ClassStatusSuccess, text)

	c.mu.Lock()
	gen := c.clearGen
	c.mu.Unlock()

	// The clear runs under c.mu so it cannot land on top of a newer status;
	// status listeners therefore must not call back into the controller.
	t := c.cfg.Scheduler.AfterFunc(c.cfg.StatusClearDelay, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.clearGen != gen {
			return
		}
		c.pendingClear = nil
		c.status.Set(ClassStatus, "")
	})

	c.mu.Lock()
	if c.clearGen == gen {
		c.pendingClear = t
	}
	c.mu.Unlock()
}
