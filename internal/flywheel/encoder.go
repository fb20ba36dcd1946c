package flywheel

// DistancePerEdge is the flywheel travel, in the configured units, covered
// by one encoder edge.
func (c *Config) DistancePerEdge() float64 {
	if c.EncoderEPR <= 0 {
		return 0
	}
	return c.Units.PerRotation() / float64(c.EncoderEPR)
}

// EdgesToDistance converts an encoder edge count into flywheel travel in the
// configured units, honouring the encoder inversion flag.
func (c *Config) EdgesToDistance(edges int64) float64 {
	d := float64(edges) * c.DistancePerEdge()
	if c.EncoderInverted {
		return -d
	}
	return d
}

// EdgeRateToRPM converts an encoder rate in edges per second into flywheel
// revolutions per minute, independent of the configured units.
func (c *Config) EdgeRateToRPM(edgesPerSecond float64) float64 {
	if c.EncoderEPR <= 0 {
		return 0
	}
	rpm := edgesPerSecond * 60 / float64(c.EncoderEPR)
	if c.EncoderInverted {
		return -rpm
	}
	return rpm
}
