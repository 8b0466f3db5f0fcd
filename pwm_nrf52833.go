//go:build nrf52833

package ws2812

import (
	"errors"
	"image/color"
	"machine"
	"runtime/volatile"
	"unsafe"
)

// pwmSeqHW mirrors one SEQ[n] register group of the nRF52833 PWM
// peripheral's integrated EasyDMA: PTR is the buffer address, CNT its
// length in 16-bit words, REFRESH/ENDDELAY control per-sample repeat and
// end-of-sequence padding (both left at zero per §4.3).
type pwmSeqHW struct {
	PTR       volatile.Register32
	CNT       volatile.Register32
	REFRESH   volatile.Register32
	ENDDELAY  volatile.Register32
	_         [4]volatile.Register32
}

// pwmHW mirrors the nRF52833 PWM peripheral's memory-mapped register
// layout closely enough to drive it directly, the same way the teacher
// drives `device/rp`'s DMA and PIO blocks through hand-rolled structs over
// volatile.Register32 (rp2-pio/piolib/dma.go's dmaChannelHW). Unlike
// RP2040, the nRF52833 PWM peripheral has EasyDMA built in: there is no
// separate DMA controller to program, only SEQ[n].PTR/CNT.
type pwmHW struct {
	_               volatile.Register32
	TASKS_STOP      volatile.Register32
	TASKS_SEQSTART  [2]volatile.Register32
	TASKS_NEXTSTEP  volatile.Register32
	_               [60]volatile.Register32

	EVENTS_STOPPED     volatile.Register32
	EVENTS_SEQSTARTED  [2]volatile.Register32
	EVENTS_SEQEND      [2]volatile.Register32
	EVENTS_PWMPERIODEND volatile.Register32
	EVENTS_LOOPSDONE   volatile.Register32
	_                  [56]volatile.Register32

	SHORTS volatile.Register32
	_      [63]volatile.Register32

	INTEN    volatile.Register32
	INTENSET volatile.Register32
	INTENCLR volatile.Register32
	_        [125]volatile.Register32

	ENABLE      volatile.Register32
	MODE        volatile.Register32
	COUNTERTOP  volatile.Register32
	PRESCALER   volatile.Register32
	DECODER     volatile.Register32
	LOOP        volatile.Register32
	_           [2]volatile.Register32

	SEQ [2]pwmSeqHW

	PSEL struct {
		OUT [4]volatile.Register32
	}
}

// nRF52833 peripheral base addresses (product specification memory map).
const (
	pwm0Base uintptr = 0x4001C000
	pwm1Base uintptr = 0x40021000
	pwm2Base uintptr = 0x40022000
)

// PWMInstance identifies one of the nRF52833's three PWM peripherals.
type PWMInstance uint8

const (
	PWM0 PWMInstance = iota
	PWM1
	PWM2
)

func (i PWMInstance) hw() *pwmHW {
	switch i {
	case PWM0:
		return (*pwmHW)(unsafe.Pointer(pwm0Base))
	case PWM1:
		return (*pwmHW)(unsafe.Pointer(pwm1Base))
	default:
		return (*pwmHW)(unsafe.Pointer(pwm2Base))
	}
}

// Bitfield layout, PWM.DECODER register.
const (
	decoderLoadCommon = 0 // one duty value drives all channels
	decoderModeRefreshCount = 0 // advance every period (per-sample refresh = 0)
)

// Bitfield layout, PWM.MODE register.
const modeUp = 0

// PwmFault is the PWM back-end's single recoverable error (§7). It
// returns ownership of the moved-in peripheral, pin and delay alongside
// the cause, so the caller can recover, reconfigure, or shut down rather
// than leaking one-of-a-kind hardware resources.
type PwmFault struct {
	Cause error
	// PWM, Pin and Delay return ownership of the resources the failed
	// Device held; the caller may pass them to a fresh New call.
	PWM   PWMInstance
	Pin   machine.Pin
	Delay DelaySource
}

func (e *PwmFault) Error() string { return "ws2812: pwm fault: " + e.Cause.Error() }
func (e *PwmFault) Unwrap() error { return e.Cause }

var errSeqEndTimeout = errors.New("timed out waiting for SEQEND")
var errBitRateMismatch = errors.New("opts.BitRate does not match ws2812.BitRate (800kHz)")

// seqEndTimeoutIters bounds the SeqEnd poll loop (§5 "Suspension points: none
// voluntary" — this is a busy-poll, not a blocking wait, but it must not
// spin forever if the peripheral never completes).
const seqEndTimeoutIters = 1_000_000

// Device is the PWM+DMA back-end (§4.3). It owns one PWM peripheral, one
// output pin, and an injected delay source exclusively; constructing it
// takes all three by value and they are only released by a PwmFault or by
// discarding the Device.
type Device struct {
	hw    *pwmHW
	pwm   PWMInstance
	pin   machine.Pin
	delay DelaySource
	opts  Options

	frameBuf [MaxBufferedPixels * 24]uint16
	oneBuf   [24]uint16
}

// New configures the given PWM peripheral to drive pin as a WS2812 data
// line and parks it enabled-but-idle (§4.3 "Configuration", §3 lifecycle).
// Ownership of pwm, pin and delay passes to the returned Device.
func New(pwm PWMInstance, pin machine.Pin, delay DelaySource, opts Options) (*Device, error) {
	if opts.BitRate != BitRate {
		return nil, &PwmFault{Cause: errBitRateMismatch, PWM: pwm, Pin: pin, Delay: delay}
	}

	configureOutputPin(pin)

	hw := pwm.hw()
	hw.ENABLE.Set(0)

	hw.PSEL.OUT[0].Set(uint32(pin))
	hw.MODE.Set(modeUp)
	hw.PRESCALER.Set(0) // divide by 1: 16MHz tick rate
	hw.COUNTERTOP.Set(uint32(periodTicks))
	hw.DECODER.Set(decoderLoadCommon | decoderModeRefreshCount<<8)
	hw.LOOP.Set(0) // one-shot

	hw.SEQ[0].REFRESH.Set(0)
	hw.SEQ[0].ENDDELAY.Set(0)
	hw.SEQ[1].REFRESH.Set(0)
	hw.SEQ[1].ENDDELAY.Set(0)

	hw.ENABLE.Set(1)

	return &Device{hw: hw, pwm: pwm, pin: pin, delay: delay, opts: opts}, nil
}

// configureOutputPin configures pin as a push-pull output idling low with
// high drive strength on both levels (§4.3 "the pin must be configured as
// a push-pull output with high-drive strength on both levels, idling
// low"). machine.PinConfig doesn't expose nRF52's DRIVE field, so it is
// set directly on the GPIO peripheral's PIN_CNF register, the same way the
// teacher reaches past `machine` into `device/rp` whenever the portable
// abstraction doesn't expose a needed knob.
func configureOutputPin(pin machine.Pin) {
	pin.Low()
	pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	setHighDrive(pin)
}

// Write implements Strip (§4.5, §9 "Two back-ends behind one contract").
func (d *Device) Write(colors []color.RGBA) error {
	if len(colors) == 0 {
		return nil
	}
	if d.opts.Buffering == PerFrameBuffer && len(colors) <= MaxBufferedPixels {
		return d.writeFrame(colors)
	}
	for _, c := range colors {
		if err := d.writeOne(c); err != nil {
			return err
		}
	}
	return nil
}

// writeOne performs one color's DMA transaction end to end (§4.3
// "Per-color operation", steps 1-5).
func (d *Device) writeOne(c color.RGBA) error {
	EncodeWord(wireWordFromColor(c), &d.oneBuf)
	if err := d.runSequence(d.oneBuf[:]); err != nil {
		return err
	}
	d.delay.DelayMicroseconds(d.opts.resetGapNS() / 1000)
	return nil
}

// writeFrame packs the whole frame into one contiguous DMA transaction
// with no inter-color gap, then a single trailing reset (§4.3 "Per-color
// vs. per-frame buffer").
func (d *Device) writeFrame(colors []color.RGBA) error {
	for i, c := range colors {
		EncodeWord(wireWordFromColor(c), (*[24]uint16)(d.frameBuf[i*24:i*24+24]))
	}
	n := len(colors) * 24
	if err := d.runSequence(d.frameBuf[:n]); err != nil {
		return err
	}
	d.delay.DelayMicroseconds(d.opts.resetGapNS() / 1000)
	return nil
}

// runSequence arms SEQ0 with buf, starts it, and busy-polls SeqEnd (§4.3
// steps 2-4). buf must remain stable until this call returns; it is never
// retained past it (§9 "DMA buffer lifetime").
func (d *Device) runSequence(buf []uint16) error {
	hw := d.hw
	hw.EVENTS_SEQEND[0].Set(0)
	hw.EVENTS_LOOPSDONE.Set(0)

	hw.SEQ[0].PTR.Set(uint32(uintptr(unsafe.Pointer(&buf[0]))))
	hw.SEQ[0].CNT.Set(uint32(len(buf)))

	hw.TASKS_SEQSTART[0].Set(1)

	for i := 0; i < seqEndTimeoutIters; i++ {
		if hw.EVENTS_SEQEND[0].Get() != 0 {
			hw.TASKS_STOP.Set(1)
			hw.EVENTS_LOOPSDONE.Set(0)
			return nil
		}
	}
	println("ws2812: pwm SEQEND timeout")
	return &PwmFault{Cause: errSeqEndTimeout, PWM: d.pwm, Pin: d.pin, Delay: d.delay}
}
