package debugconfig

/*
 * TX2  - debug configuration options
 *
 * Copyright 2025, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

import (
	"errors"

	config "github.com/rcornwell/TX2/config/configparser"
	"github.com/rcornwell/TX2/util/debug"
)

// register the debug option on initialize.
func init() {
	config.RegisterModel("DEBUG", config.TypeOptions, setDebug)
}

// Turn on debug options for one module, for example:
//
//	DEBUG CPU fetch, execute
//	DEBUG PETR io
func setDebug(_ uint16, module string, options []config.Option) error {
	if module == "" {
		return errors.New("debug requires a module name")
	}
	for _, opt := range options {
		if err := debug.Debug(module, opt.Name); err != nil {
			return err
		}
		for _, value := range opt.Value {
			if err := debug.Debug(module, *value); err != nil {
				return err
			}
		}
	}
	return nil
}
