// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package sen5x provides a driver for the Sensirion SEN50, SEN54 and SEN55
// environmental sensor nodes.
//
// The SEN55 measures particulate matter (PM1.0, PM2.5, PM4.0, PM10.0),
// relative humidity, temperature, and reports a VOC and a NOx index. The
// SEN54 has no NOx sensor, the SEN50 measures particulate matter only;
// channels a variant doesn't have read as NaN.
//
// Humidity and temperature are unavailable for a few seconds after starting
// a measurement, the gas indices for up to several minutes while the
// algorithms warm up.
//
// # Datasheet
//
// https://sensirion.com/media/documents/6791EFA0/62A1F68F/Sensirion_Datasheet_Environmental_Node_SEN5x.pdf
package sen5x
