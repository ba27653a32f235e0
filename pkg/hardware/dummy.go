package hardware

import (
	"fmt"

	"github.com/tigerbot-team/tigerbot/go-diffdrive/pkg/encoder"
	"github.com/tigerbot-team/tigerbot/go-diffdrive/pkg/kinematics"
)

// Dummy logs every call and never moves.
type Dummy struct{}

func NewDummy() *Dummy {
	return &Dummy{}
}

func (d *Dummy) StartRawControlMode() RawControl {
	fmt.Println("DHW: StartRawControlMode")
	return d
}

func (d *Dummy) SetWheelSpeeds(left, right float64) {
	fmt.Printf("DHW: SetWheelSpeeds left=%v right=%v\n", left, right)
}

func (d *Dummy) StopMotorControl() {
	fmt.Println("DHW: StopMotorControl")
}

func (d *Dummy) RawDistancesTraveled() (encoder.PerWheel[int16], error) {
	fmt.Println("DHW: RawDistancesTraveled")
	return encoder.PerWheel[int16]{}, nil
}

func (d *Dummy) CurrentPose() kinematics.Pose {
	fmt.Println("DHW: CurrentPose")
	return kinematics.Pose{}
}

func (d *Dummy) Tick(dt float64) {
	fmt.Printf("DHW: Tick dt=%v\n", dt)
}

var _ Simulated = (*Dummy)(nil)
